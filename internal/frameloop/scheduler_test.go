package frameloop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// scriptedHost runs onPoll on every PollEvents call.
type scriptedHost struct {
	polls     int
	presented int
	onPoll    func(poll int)
}

func (h *scriptedHost) Open() bool { return true }
func (h *scriptedHost) PollEvents() {
	h.polls++
	if h.onPoll != nil {
		h.onPoll(h.polls)
	}
}
func (h *scriptedHost) Present() { h.presented++ }

func noLimit() *FPSLimiter {
	return NewFPSLimiter(func() int { return 0 })
}

func TestRunUntilHostCloses(t *testing.T) {
	host := &HeadlessHost{MaxFrames: 5}
	var got []uint64
	s := NewScheduler(host, func(f Frame) { got = append(got, f.Index) }, WithLimiter(noLimit()))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if s.Frames() != 5 || host.Presented() != 5 {
		t.Errorf("Expected 5 frames, got %d frames and %d presented", s.Frames(), host.Presented())
	}
	for i, idx := range got {
		if idx != uint64(i) {
			t.Errorf("Frame %d has index %d", i, idx)
		}
	}
}

func TestStopFromFrameIsIdempotent(t *testing.T) {
	host := &HeadlessHost{}
	var s *Scheduler
	s = NewScheduler(host, func(f Frame) {
		if f.Index == 2 {
			s.Stop()
			s.Stop()
		}
	}, WithLimiter(noLimit()))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if s.Frames() != 3 {
		t.Errorf("Expected 3 frames before stop, got %d", s.Frames())
	}
	if !s.Stopped() {
		t.Errorf("Expected scheduler to report stopped")
	}

	// A stopped scheduler returns immediately.
	if err := s.Run(context.Background()); err != nil || s.Frames() != 3 {
		t.Errorf("Run after Stop must not run frames: err=%v frames=%d", err, s.Frames())
	}
}

func TestStopFromAnotherGoroutine(t *testing.T) {
	s := NewScheduler(&HeadlessHost{Hz: 1000}, nil, WithLimiter(noLimit()))
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewScheduler(&HeadlessHost{}, func(f Frame) {
		if f.Index == 1 {
			cancel()
		}
	}, WithLimiter(noLimit()))

	if err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if s.Frames() != 2 {
		t.Errorf("Expected 2 frames, got %d", s.Frames())
	}
}

func TestElapsedExcludesPause(t *testing.T) {
	clock := newFakeClock()
	var frames []Frame
	s := NewScheduler(&HeadlessHost{}, func(f Frame) { frames = append(frames, f) },
		WithClock(clock.Now), WithLimiter(noLimit()))

	clock.Advance(time.Second)
	s.Step()

	s.Pause()
	clock.Advance(10 * time.Second)
	if got := s.Elapsed(); got != time.Second {
		t.Errorf("Elapsed must freeze while paused, got %v", got)
	}
	s.Resume()

	clock.Advance(time.Second)
	s.Step()

	if frames[0].Elapsed != time.Second || frames[0].Delta != time.Second {
		t.Errorf("Unexpected first frame %+v", frames[0])
	}
	if frames[1].Elapsed != 2*time.Second {
		t.Errorf("Expected 2s elapsed after resume, got %v", frames[1].Elapsed)
	}
	if frames[1].Delta != time.Second {
		t.Errorf("Expected 1s delta across pause, got %v", frames[1].Delta)
	}
}

func TestPausedLoopPumpsEventsWithoutFrames(t *testing.T) {
	var s *Scheduler
	host := &scriptedHost{}
	host.onPoll = func(poll int) {
		switch poll {
		case 2:
			s.Pause()
		case 5:
			s.Resume()
		case 6:
			s.Stop()
		}
	}
	s = NewScheduler(host, nil, WithLimiter(noLimit()))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	// Polls 1 runs a frame, 2-4 are paused, 5 resumes, 6 stops before its frame.
	if host.polls != 6 {
		t.Errorf("Expected 6 polls, got %d", host.polls)
	}
	if s.Frames() != 2 || host.presented != 2 {
		t.Errorf("Expected 2 frames, got %d (presented %d)", s.Frames(), host.presented)
	}
}

func TestTogglePause(t *testing.T) {
	s := NewScheduler(&HeadlessHost{}, nil)
	if !s.TogglePause() || !s.Paused() {
		t.Errorf("Expected paused after first toggle")
	}
	if s.TogglePause() || s.Paused() {
		t.Errorf("Expected running after second toggle")
	}
	s.Resume()
	if s.Paused() {
		t.Errorf("Resume on a running scheduler must be a no-op")
	}
}

func TestRunTwiceConcurrently(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	host := &scriptedHost{}
	host.onPoll = func(poll int) {
		if poll == 1 {
			close(entered)
			<-release
		}
	}
	s := NewScheduler(host, nil, WithLimiter(noLimit()))

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()
	<-entered

	if err := s.Run(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("Expected ErrRunning, got %v", err)
	}
	s.Stop()
	close(release)
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestFPSLimiterPacing(t *testing.T) {
	l := NewFPSLimiter(func() int { return 100 })
	start := time.Now()
	for range 5 {
		l.Wait(false)
	}
	if d := time.Since(start); d < 40*time.Millisecond {
		t.Errorf("Expected at least ~50ms for 5 frames at 100 FPS, got %v", d)
	}

	unlimited := NewFPSLimiter(func() int { return 0 })
	start = time.Now()
	for range 1000 {
		unlimited.Wait(false)
	}
	if d := time.Since(start); d > 100*time.Millisecond {
		t.Errorf("Unlimited limiter should not wait, took %v", d)
	}
}

func TestEventHandlerRunsWhilePaused(t *testing.T) {
	var s *Scheduler
	handled := 0
	s = NewScheduler(&HeadlessHost{}, nil, WithLimiter(noLimit()), WithEventHandler(func() {
		handled++
		switch handled {
		case 1:
			s.Pause()
		case 3:
			s.Resume()
		case 4:
			s.Stop()
		}
	}))

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if handled != 4 {
		t.Errorf("Expected the handler on every iteration, got %d calls", handled)
	}
	if s.Frames() != 1 {
		t.Errorf("Expected a single frame after resume, got %d", s.Frames())
	}
}
