// Package frameloop drives the per-refresh frame function with explicit
// start, stop and pause control.
package frameloop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRunning is returned when Run is called on a scheduler that is already running.
var ErrRunning = errors.New("frameloop: scheduler already running")

// Host is the surface the scheduler presents frames to.
type Host interface {
	// Open reports whether the host still accepts frames.
	Open() bool
	// PollEvents pumps pending input and window events.
	PollEvents()
	// Present shows the frame that was just drawn.
	Present()
}

// Frame describes one invocation of the frame function.
type Frame struct {
	Index uint64
	// Elapsed is time since the scheduler was created, excluding paused intervals.
	Elapsed time.Duration
	Delta   time.Duration
}

// FrameFunc advances and draws one frame.
type FrameFunc func(Frame)

type Option func(*Scheduler)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithEventHandler runs fn after every PollEvents, including while paused,
// so input can still resume the loop.
func WithEventHandler(fn func()) Option {
	return func(s *Scheduler) { s.onEvents = fn }
}

// WithLimiter sets the frame pacer used between iterations of Run.
func WithLimiter(l *FPSLimiter) Option {
	return func(s *Scheduler) { s.limiter = l }
}

type Scheduler struct {
	host     Host
	fn       FrameFunc
	onEvents func()
	now      func() time.Time
	limiter  *FPSLimiter

	stop     chan struct{}
	stopOnce sync.Once

	mu          sync.Mutex
	running     bool
	paused      bool
	start       time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	lastElapsed time.Duration
	frames      uint64
}

func NewScheduler(host Host, fn FrameFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		host: host,
		fn:   fn,
		now:  time.Now,
		stop: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = NewFPSLimiter(nil)
	}
	s.start = s.now()
	return s
}

// Run invokes the frame function once per iteration until Stop is called,
// ctx is cancelled or the host closes. It returns ctx.Err() on cancellation
// and nil otherwise.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		default:
		}

		if !s.host.Open() {
			return nil
		}
		s.host.PollEvents()
		if s.onEvents != nil {
			s.onEvents()
		}

		// Event callbacks may have stopped or paused the loop.
		if s.Stopped() {
			return nil
		}
		paused := s.Paused()
		if !paused {
			s.Step()
		}
		s.limiter.Wait(paused)
	}
}

// Step runs exactly one frame synchronously and presents it.
func (s *Scheduler) Step() {
	s.mu.Lock()
	elapsed := s.elapsedLocked()
	f := Frame{Index: s.frames, Elapsed: elapsed, Delta: elapsed - s.lastElapsed}
	s.lastElapsed = elapsed
	s.frames++
	s.mu.Unlock()

	if s.fn != nil {
		s.fn(f)
	}
	s.host.Present()
}

// Stop ends Run at the start of its next iteration. Safe to call more than once
// and from any goroutine.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

// Pause suspends frame invocations; events keep being pumped.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.paused {
		return
	}
	s.paused = true
	s.pausedAt = s.now()
}

// Resume restarts frame invocations. The paused interval is excluded from Elapsed.
func (s *Scheduler) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.paused {
		return
	}
	s.pausedTotal += s.now().Sub(s.pausedAt)
	s.paused = false
}

// TogglePause flips between paused and running and returns the new paused state.
func (s *Scheduler) TogglePause() bool {
	if s.Paused() {
		s.Resume()
		return false
	}
	s.Pause()
	return true
}

func (s *Scheduler) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

// Frames returns the number of frames run so far.
func (s *Scheduler) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Elapsed returns the current running time, excluding paused intervals.
func (s *Scheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Scheduler) elapsedLocked() time.Duration {
	now := s.now()
	if s.paused {
		now = s.pausedAt
	}
	return now.Sub(s.start) - s.pausedTotal
}
