package main

import (
	"portfolio-cube/internal/frameloop"
	"portfolio-cube/internal/input"
	"portfolio-cube/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, v *viewer.Viewer, c *Components, sched *frameloop.Scheduler, im *input.InputManager) {
	// Pointer moves only retarget the object; the frame updater eases toward it
	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		v.Scene.HandlePointerMove(xpos, ypos)
	})

	im.SetKeyCallback(window)

	// Framebuffer size is the output surface in pixels
	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		c.Renderer.SetViewport(fbWidth, fbHeight)
	})

	// Window size drives pointer mapping and the camera aspect
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		v.Scene.Resize(width, height)
	})

	// Redraw during a live resize without advancing the animation
	window.SetRefreshCallback(func(w *glfw.Window) {
		c.Renderer.Render(v.Scene, sched.Elapsed())
		w.SwapBuffers()
	})
}
