package hud

import (
	"strings"
	"testing"
	"time"

	"portfolio-cube/internal/motion"
	"portfolio-cube/internal/profiling"
	"portfolio-cube/internal/scene"
)

func TestFrameStats(t *testing.T) {
	var s FrameStats
	start := time.Unix(0, 0)
	for i := 0; i <= 60; i++ {
		s.Tick(start.Add(time.Duration(i)*time.Second/60), time.Duration(i%3+1)*time.Millisecond)
	}

	if s.FPS() != 60 {
		t.Errorf("Expected 60 FPS, got %d", s.FPS())
	}
	lo, avg, hi := s.FrameTimes()
	if lo != time.Millisecond || hi != 3*time.Millisecond {
		t.Errorf("Unexpected min/max %v %v", lo, hi)
	}
	if avg < lo || avg > hi {
		t.Errorf("Average %v outside [%v, %v]", avg, lo, hi)
	}
	if len(s.history) != historySize {
		t.Errorf("Expected history capped at %d, got %d", historySize, len(s.history))
	}
}

func TestLines(t *testing.T) {
	sc := scene.New(scene.Options{
		Motion:       motion.DefaultParams(),
		Rig:          scene.RimOnlyRig(),
		BaseGeometry: scene.NewBox(2, 2, 2),
		Width:        900,
		Height:       600,
	})
	h := NewHUD(900, 600)

	lines := h.lines(sc)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"FPS:", "Meshes: 1", "Rim: 0.00, 0.00, -7.00"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected %q in overlay:\n%s", want, joined)
		}
	}

	profiling.ResetFrame()
	defer profiling.ResetFrame()
	stop := profiling.Track("renderer.object")
	time.Sleep(2 * time.Millisecond)
	stop()

	if strings.Contains(strings.Join(h.lines(sc), "\n"), "renderer.object") {
		t.Errorf("Profiling lines must be hidden by default")
	}
	h.ToggleProfiling()
	joined = strings.Join(h.lines(sc), "\n")
	if !strings.Contains(joined, "renderer.object") {
		t.Errorf("Expected profiling lines after toggle")
	}
	if !strings.Contains(joined, "Render (tracked): ") || strings.Contains(joined, "Render (tracked): 0.00ms") {
		t.Errorf("Expected a non-zero tracked render line:\n%s", joined)
	}
}

func TestRenderTotalExcludesOtherPrefixes(t *testing.T) {
	sc := scene.New(scene.Options{Motion: motion.DefaultParams(), Width: 900, Height: 600})
	h := NewHUD(900, 600)
	h.ToggleProfiling()

	profiling.ResetFrame()
	defer profiling.ResetFrame()
	stop := profiling.Track("scene.Update")
	time.Sleep(2 * time.Millisecond)
	stop()

	if joined := strings.Join(h.lines(sc), "\n"); !strings.Contains(joined, "Render (tracked): 0.00ms") {
		t.Errorf("Only renderer passes count toward the render total:\n%s", joined)
	}
}

func TestRightAligned(t *testing.T) {
	if got := rightAligned(900, 100); got != 790 {
		t.Errorf("Expected x=790, got %v", got)
	}
	if got := rightAligned(50, 100); got != margin {
		t.Errorf("Expected clamp to margin, got %v", got)
	}
}
