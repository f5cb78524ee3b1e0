package viewer

import (
	"portfolio-cube/internal/input"
)

// Loop is the part of the scheduler keyboard actions drive.
type Loop interface {
	Stop()
	TogglePause() bool
}

// Controls receives keyboard actions. Nil hooks are skipped.
type Controls struct {
	Loop            Loop
	ToggleMarker    func()
	ToggleProfiling func(on bool)
	PauseChanged    func(paused bool)
}

// HandleInput applies the actions pressed this frame. It runs on every
// loop iteration, including paused ones.
func (v *Viewer) HandleInput(im *input.InputManager, c Controls) {
	if im.JustPressed(input.ActionQuit) && c.Loop != nil {
		v.logger.Println("Quit requested")
		c.Loop.Stop()
	}
	if im.JustPressed(input.ActionTogglePause) && c.Loop != nil {
		paused := c.Loop.TogglePause()
		if c.PauseChanged != nil {
			c.PauseChanged(paused)
		}
	}
	if im.JustPressed(input.ActionResetPose) {
		v.Scene.Reset()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		v.profiling = !v.profiling
		v.logger.Printf("Profiling: %v", v.profiling)
		if c.ToggleProfiling != nil {
			c.ToggleProfiling(v.profiling)
		}
	}
	if im.JustPressed(input.ActionToggleLightMarker) && c.ToggleMarker != nil {
		c.ToggleMarker()
	}
}
