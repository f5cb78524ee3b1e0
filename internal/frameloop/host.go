package frameloop

import (
	"sync/atomic"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"

	"portfolio-cube/internal/profiling"
)

// GLFWHost presents frames to a GLFW window.
type GLFWHost struct {
	Window *glfw.Window
}

func (h GLFWHost) Open() bool {
	return !h.Window.ShouldClose()
}

func (h GLFWHost) PollEvents() {
	defer profiling.Track("glfw.PollEvents")()
	glfw.PollEvents()
}

func (h GLFWHost) Present() {
	defer profiling.Track("glfw.SwapBuffers")()
	h.Window.SwapBuffers()
}

// HeadlessHost runs without a window. It closes after MaxFrames presented
// frames (0 means unbounded) and, when Hz is positive, paces PollEvents on a ticker.
type HeadlessHost struct {
	MaxFrames uint64
	Hz        int

	presented atomic.Uint64
	ticker    *time.Ticker
}

func (h *HeadlessHost) Open() bool {
	if h.MaxFrames > 0 && h.presented.Load() >= h.MaxFrames {
		if h.ticker != nil {
			h.ticker.Stop()
			h.ticker = nil
		}
		return false
	}
	return true
}

func (h *HeadlessHost) PollEvents() {
	if h.Hz <= 0 {
		return
	}
	if h.ticker == nil {
		h.ticker = time.NewTicker(time.Second / time.Duration(h.Hz))
	}
	<-h.ticker.C
}

func (h *HeadlessHost) Present() {
	h.presented.Add(1)
}

// Presented returns how many frames were presented.
func (h *HeadlessHost) Presented() uint64 {
	return h.presented.Load()
}
