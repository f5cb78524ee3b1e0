package main

import (
	"portfolio-cube/internal/config"
	"portfolio-cube/internal/graphics/renderables/hud"
	"portfolio-cube/internal/graphics/renderables/lightmarker"
	"portfolio-cube/internal/graphics/renderables/object"
	renderer "portfolio-cube/internal/graphics/renderer"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupWindow(cfg *config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, err
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)

	return window, nil
}

// Components holds the renderer and the renderables the input handlers touch
type Components struct {
	Renderer *renderer.Renderer
	HUD      *hud.HUD
	Marker   *lightmarker.LightMarker
}

func setupRenderer(window *glfw.Window) (*Components, error) {
	fbWidth, fbHeight := window.GetFramebufferSize()

	objectRenderer := object.NewObject()
	markerRenderer := lightmarker.NewLightMarker()
	hudRenderer := hud.NewHUD(fbWidth, fbHeight)

	r, err := renderer.NewRenderer(
		objectRenderer,
		markerRenderer,
		hudRenderer,
	)
	if err != nil {
		return nil, err
	}
	r.SetViewport(fbWidth, fbHeight)

	return &Components{
		Renderer: r,
		HUD:      hudRenderer,
		Marker:   markerRenderer,
	}, nil
}
