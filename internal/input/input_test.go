package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestDefaultBindings(t *testing.T) {
	cases := []struct {
		key    glfw.Key
		action Action
	}{
		{glfw.KeyEscape, ActionQuit},
		{glfw.KeySpace, ActionTogglePause},
		{glfw.KeyR, ActionResetPose},
		{glfw.KeyV, ActionToggleProfiling},
		{glfw.KeyL, ActionToggleLightMarker},
	}
	for _, c := range cases {
		im := NewInputManager()
		im.HandleKeyEvent(c.key, glfw.Press)
		if !im.JustPressed(c.action) {
			t.Errorf("Expected %v to be just pressed after key %v", c.action, c.key)
		}
	}
}

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	if !im.JustPressed(ActionTogglePause) || !im.IsActive(ActionTogglePause) {
		t.Fatalf("Expected press edge and active state")
	}
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Repeat)
	if im.JustPressed(ActionTogglePause) {
		t.Errorf("Repeat must not produce a second press edge")
	}
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeySpace, glfw.Release)
	if im.IsActive(ActionTogglePause) || im.JustPressed(ActionTogglePause) {
		t.Errorf("Expected inactive state and no press edge after release")
	}
	im.PostUpdate()
	im.HandleKeyEvent(glfw.KeySpace, glfw.Press)
	if !im.JustPressed(ActionTogglePause) {
		t.Errorf("Expected a new press edge after release")
	}
}

func TestPressAndReleaseWithinFrame(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyR, glfw.Press)
	im.HandleKeyEvent(glfw.KeyR, glfw.Release)

	if !im.JustPressed(ActionResetPose) {
		t.Errorf("A tap inside one frame must still register as pressed")
	}
}

func TestUnboundAndInvalid(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	for a := range ActionCount {
		if im.JustPressed(a) {
			t.Errorf("Unbound key must not trigger %v", a)
		}
	}

	im.BindKey(glfw.KeyQ, ActionCount)
	im.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	if im.IsActive(Action(-1)) || im.JustPressed(ActionCount) {
		t.Errorf("Out-of-range actions must be ignored")
	}
	if Action(42).String() != "unknown" {
		t.Errorf("Unexpected name for invalid action")
	}
}
