package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	"portfolio-cube/internal/config"
	"portfolio-cube/internal/frameloop"
	"portfolio-cube/internal/input"
	"portfolio-cube/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		closer.Fatalln(err)
	}
	config.SetFPSLimit(cfg.FPS)

	if cfg.Headless {
		runHeadless(cfg)
	} else {
		runWindowed(cfg)
	}
	closer.Close()
}

func runWindowed(cfg *config.Config) {
	if err := glfw.Init(); err != nil {
		closer.Fatalln("glfw init:", err)
	}

	window, err := setupWindow(cfg)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln("window:", err)
	}

	components, err := setupRenderer(window)
	if err != nil {
		glfw.Terminate()
		closer.Fatalln("renderer:", err)
	}

	v := viewer.Bootstrap(context.Background(), cfg)
	v.Scene.Resize(window.GetSize())
	if !cfg.Debug {
		components.HUD.ToggleVisible()
	}

	im := input.NewInputManager()
	controls := viewer.Controls{
		ToggleMarker: components.Marker.Toggle,
		ToggleProfiling: func(on bool) {
			if on != components.HUD.ShowProfiling() {
				components.HUD.ToggleProfiling()
			}
		},
		PauseChanged: func(paused bool) {
			if paused {
				components.HUD.SetStatus("paused")
			} else {
				components.HUD.SetStatus("")
			}
		},
	}
	sched := frameloop.NewScheduler(
		frameloop.GLFWHost{Window: window},
		func(f frameloop.Frame) { v.Frame(f, components.Renderer) },
		frameloop.WithEventHandler(func() {
			v.HandleInput(im, controls)
			im.PostUpdate()
		}),
	)
	controls.Loop = sched

	setupInputHandlers(window, v, components, sched, im)

	done := make(chan struct{})
	closer.Bind(func() {
		sched.Stop()
		<-done
	})

	if err := sched.Run(context.Background()); err != nil {
		log.Printf("Frame loop: %v", err)
	}

	components.Renderer.Dispose()
	v.Close()
	window.Destroy()
	glfw.Terminate()
	close(done)
}

// runHeadless drives the scene without a window or GL context.
func runHeadless(cfg *config.Config) {
	v := viewer.Bootstrap(context.Background(), cfg)
	host := &frameloop.HeadlessHost{MaxFrames: cfg.Frames, Hz: 60}
	sched := frameloop.NewScheduler(host, func(f frameloop.Frame) { v.Frame(f, nil) })

	done := make(chan struct{})
	closer.Bind(func() {
		sched.Stop()
		<-done
	})

	if err := sched.Run(context.Background()); err != nil {
		log.Printf("Frame loop: %v", err)
	}
	pose := v.Scene.Pose()
	log.Printf("Headless run finished after %d frames: pos %.4f,%.4f rot %.4f,%.4f, %d failed loads",
		sched.Frames(), pose.Position.X(), pose.Position.Y(), pose.Rotation.X(), pose.Rotation.Y(), v.Failures())

	v.Close()
	close(done)
}
