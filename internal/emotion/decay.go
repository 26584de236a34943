package emotion

import (
	"math"
	"sync"
	"time"
)

const (
	// DecayInterval is the quiet period before a committed intensity relaxes.
	DecayInterval = 3000 * time.Millisecond
	// DecayFactor is applied to the committed intensity when the timer fires.
	DecayFactor = 0.8
)

// Timer is the part of *time.Timer the scheduler relies on.
type Timer interface {
	Stop() bool
}

// AfterFunc starts a one-shot timer calling f after d.
type AfterFunc func(d time.Duration, f func()) Timer

func stdAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Relax returns the intensity after one decay step, floored at BaseIntensity.
func Relax(intensity float64) float64 {
	return math.Max(intensity*DecayFactor, BaseIntensity)
}

// DecayScheduler owns at most one pending relaxation. Scheduling replaces the
// pending one; a replaced or canceled relaxation never runs.
type DecayScheduler struct {
	mu        sync.Mutex
	afterFunc AfterFunc
	interval  time.Duration
	pending   Timer
	// generation is bumped on every Schedule and Cancel so a timer that already
	// fired but lost the race to the lock becomes a no-op.
	generation uint64
}

// NewDecayScheduler returns a scheduler using time.AfterFunc when afterFunc is nil.
func NewDecayScheduler(afterFunc AfterFunc) *DecayScheduler {
	if afterFunc == nil {
		afterFunc = stdAfterFunc
	}
	return &DecayScheduler{
		afterFunc: afterFunc,
		interval:  DecayInterval,
	}
}

// Schedule cancels any pending relaxation and arranges for apply to receive
// Relax(intensity) once the quiet interval elapses.
func (s *DecayScheduler) Schedule(intensity float64, apply func(relaxed float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.generation++
	gen := s.generation
	relaxed := Relax(intensity)

	s.pending = s.afterFunc(s.interval, func() {
		s.mu.Lock()
		if gen != s.generation {
			s.mu.Unlock()
			return
		}
		s.pending = nil
		s.mu.Unlock()

		apply(relaxed)
	})
}

// Cancel drops the pending relaxation. Canceling after the timer fired is a no-op.
func (s *DecayScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.generation++
}

// Pending reports whether a relaxation is waiting to fire.
func (s *DecayScheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *DecayScheduler) stopLocked() {
	if s.pending == nil {
		return
	}
	s.pending.Stop()
	s.pending = nil
}
