package hud

import "time"

// historySize is the rolling window for frame time statistics.
const historySize = 60

// FrameStats keeps a per-second FPS counter and rolling frame time statistics
type FrameStats struct {
	frames       int
	lastFPSCheck time.Time
	currentFPS   int

	history []time.Duration
	min     time.Duration
	max     time.Duration
	avg     time.Duration
}

// Tick counts one frame at time now and records its duration.
func (s *FrameStats) Tick(now time.Time, frame time.Duration) {
	if s.lastFPSCheck.IsZero() {
		s.lastFPSCheck = now
	} else {
		s.frames++
	}
	if now.Sub(s.lastFPSCheck) >= time.Second {
		s.currentFPS = s.frames
		s.lastFPSCheck = now
		s.frames = 0
	}

	if len(s.history) >= historySize {
		s.history = s.history[1:]
	}
	s.history = append(s.history, frame)

	var total time.Duration
	s.min, s.max = frame, frame
	for _, d := range s.history {
		total += d
		s.min = min(s.min, d)
		s.max = max(s.max, d)
	}
	s.avg = total / time.Duration(len(s.history))
}

// FPS returns the frame count of the last completed second.
func (s *FrameStats) FPS() int { return s.currentFPS }

// FrameTimes returns min, average and max over the rolling window.
func (s *FrameStats) FrameTimes() (lo, avg, hi time.Duration) {
	return s.min, s.avg, s.max
}
