package frameloop

import (
	"time"

	"portfolio-cube/internal/config"
)

// pausedFPSLimit caps the loop while paused so event pumping does not spin a core.
const pausedFPSLimit = 120

// FPSLimiter provides high-precision frame rate limiting
type FPSLimiter struct {
	limit func() int
	next  time.Time
}

// NewFPSLimiter creates a limiter reading its cap from limit.
// A nil limit reads the global render settings.
func NewFPSLimiter(limit func() int) *FPSLimiter {
	if limit == nil {
		limit = config.GetFPSLimit
	}
	return &FPSLimiter{limit: limit}
}

// Wait blocks until the next frame should be rendered based on the FPS limit.
// Uses a hybrid sleep/spin approach for better precision on high FPS caps.
func (f *FPSLimiter) Wait(paused bool) {
	effectiveLimit := f.limit()
	if paused {
		effectiveLimit = pausedFPSLimit
	}

	if effectiveLimit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(effectiveLimit)

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// Resync after a hitch instead of trying to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
