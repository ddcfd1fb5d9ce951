// Package timectrl replays simulation timelines against a controllable clock.
package timectrl

import (
	"context"
	"sync"
	"time"
)

// Mode describes how the TimeController advances simulation time.
type Mode int

const (
	// RealTime advances on the wall clock, one Tick per Tick/Rate of real
	// time.
	RealTime Mode = iota
	// Accelerated advances as quickly as the loop can run while still
	// stepping by Tick.
	Accelerated
)

// TimeController drives simulation time and notifies registered listeners on
// every step. A pass replay registers a listener that renders the geometry at
// each tick.
type TimeController struct {
	StartTime time.Time
	Tick      time.Duration
	Mode      Mode

	// Rate scales RealTime playback: 2 means two simulated seconds per wall
	// second. Values <= 0 play at 1x. Ignored in Accelerated mode.
	Rate float64

	mu          sync.RWMutex
	currentTime time.Time

	listeners []func(time.Time)
}

// NewTimeController constructs a controller positioned at start.
func NewTimeController(start time.Time, tick time.Duration, mode Mode) *TimeController {
	return &TimeController{
		StartTime:   start,
		Tick:        tick,
		Mode:        mode,
		currentTime: start,
	}
}

// Now returns the current simulation time.
func (tc *TimeController) Now() time.Time {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return tc.currentTime
}

// ElapsedS returns the simulation seconds elapsed since StartTime.
func (tc *TimeController) ElapsedS() float64 {
	return tc.Now().Sub(tc.StartTime).Seconds()
}

// SetTime repositions the clock without notifying listeners.
func (tc *TimeController) SetTime(t time.Time) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.currentTime = t
}

// AddListener registers a callback invoked after every step with the new
// simulation time. Listeners must be registered before Start or Run.
func (tc *TimeController) AddListener(fn func(time.Time)) {
	tc.listeners = append(tc.listeners, fn)
}

// Run advances the clock from its current position by duration, stepping by
// Tick and clamping the final step to the end of the span. It returns the
// context error if cancelled mid-replay.
func (tc *TimeController) Run(ctx context.Context, duration time.Duration) error {
	if duration <= 0 || tc.Tick <= 0 {
		return nil
	}

	var ticker *time.Ticker
	if tc.Mode == RealTime {
		rate := tc.Rate
		if rate <= 0 {
			rate = 1
		}
		wait := time.Duration(float64(tc.Tick) / rate)
		if wait <= 0 {
			wait = time.Nanosecond
		}
		ticker = time.NewTicker(wait)
		defer ticker.Stop()
	}

	end := tc.Now().Add(duration)
	for {
		tc.mu.RLock()
		now := tc.currentTime
		tc.mu.RUnlock()
		if !now.Before(end) {
			return nil
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		next := now.Add(tc.Tick)
		if next.After(end) {
			next = end
		}
		tc.mu.Lock()
		tc.currentTime = next
		tc.mu.Unlock()

		for _, fn := range tc.listeners {
			fn(next)
		}
	}
}

// Start runs the controller for the specified duration in a separate
// goroutine and returns a channel closed when the replay finishes.
func (tc *TimeController) Start(duration time.Duration) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = tc.Run(context.Background(), duration)
	}()
	return done
}
