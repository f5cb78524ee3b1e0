// Package hud draws the debug text overlay: FPS, pose and profiling lines.
package hud

import (
	"fmt"
	"strings"
	"time"

	"portfolio-cube/internal/graphics"
	renderer "portfolio-cube/internal/graphics/renderer"
	"portfolio-cube/internal/profiling"
	"portfolio-cube/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	fontPixels = 24
	textScale  = 0.6
	margin     = 10
)

// HUD implements the debug overlay renderable
type HUD struct {
	fontRenderer  *graphics.FontRenderer
	width, height int

	visible       bool
	showProfiling bool
	status        string

	stats     FrameStats
	lastFrame time.Time
}

// NewHUD creates the overlay for a width x height framebuffer
func NewHUD(width, height int) *HUD {
	return &HUD{width: width, height: height, visible: true}
}

// Init bakes the font atlas and uploads it
func (h *HUD) Init() error {
	atlas, err := graphics.BakeGlyphs(nil, fontPixels)
	if err != nil {
		return fmt.Errorf("hud font: %w", err)
	}
	h.fontRenderer, err = graphics.NewFontRenderer(atlas.Upload(), h.width, h.height)
	return err
}

// Render draws the overlay lines in the top-left corner
func (h *HUD) Render(ctx renderer.RenderContext) {
	now := time.Now()
	if !h.lastFrame.IsZero() {
		h.stats.Tick(now, now.Sub(h.lastFrame))
	}
	h.lastFrame = now

	if !h.visible {
		return
	}
	defer profiling.Track("renderer.hud")()

	lines := h.lines(ctx.Scene)
	h.fontRenderer.RenderLines(lines, margin, 24, 17, textScale, mgl32.Vec3{1, 1, 1})

	if h.status != "" {
		w, _ := h.fontRenderer.Measure(h.status, textScale)
		h.fontRenderer.RenderLines([]string{h.status}, rightAligned(h.width, w), 24, 17, textScale, mgl32.Vec3{1, 0.8, 0.3})
	}
}

// rightAligned returns the x at which text of the given width ends one
// margin from the right edge, never left of the margin.
func rightAligned(width int, textWidth float32) float32 {
	return max(margin, float32(width)-textWidth-margin)
}

// Dispose cleans up resources
func (h *HUD) Dispose() {
	if h.fontRenderer != nil {
		h.fontRenderer.Dispose()
	}
}

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.fontRenderer != nil {
		h.fontRenderer.SetViewport(width, height)
	}
}

// ToggleVisible shows or hides the whole overlay
func (h *HUD) ToggleVisible() { h.visible = !h.visible }

// ToggleProfiling toggles the profiling lines
func (h *HUD) ToggleProfiling() { h.showProfiling = !h.showProfiling }

// ShowProfiling returns whether profiling lines are drawn
func (h *HUD) ShowProfiling() bool { return h.showProfiling }

// SetStatus sets the line drawn in the top-right corner, e.g. "paused"
func (h *HUD) SetStatus(status string) { h.status = status }

func (h *HUD) lines(s *scene.Scene) []string {
	lines := make([]string, 0, 16)
	lo, avg, hi := h.stats.FrameTimes()
	lines = append(lines, fmt.Sprintf("FPS: %d | frame %.2fms avg (%.2f-%.2f)", h.stats.FPS(), ms(avg), ms(lo), ms(hi)))

	pose := s.Pose()
	target := s.Target()
	lines = append(lines,
		fmt.Sprintf("Pos: %.3f, %.3f | Target: %.3f, %.3f", pose.Position.X(), pose.Position.Y(), target.X(), target.Y()),
		fmt.Sprintf("Rot: %.3f, %.3f | Meshes: %d", pose.Rotation.X(), pose.Rotation.Y(), len(s.Object.Children)),
	)
	if rim := s.Rig.Rim; rim != nil {
		lines = append(lines, fmt.Sprintf("Rim: %.2f, %.2f, %.2f", rim.Position.X(), rim.Position.Y(), rim.Position.Z()))
	}
	if h.showProfiling {
		lines = append(lines, fmt.Sprintf("Render (tracked): %.2fms", ms(profiling.SumWithPrefix("renderer."))))
		if top := profiling.TopN(8); top != "" {
			for line := range strings.SplitSeq(top, ", ") {
				if line != "" && !strings.HasSuffix(line, ":0ms") {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
