package playback

import (
	"sync"
	"time"
)

// Timer is a pending wake-up returned by a [Clock].
type Timer interface {
	// Stop prevents the wake-up from firing. It reports whether the call
	// stopped it, as [time.Timer.Stop] does.
	Stop() bool
}

// Clock schedules wake-ups. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock returns a Clock backed by [time.AfterFunc].
func RealClock() Clock { return realClock{} }

// Scheduler owns at most one pending wake-up.
//
// Every call to Schedule or Stop starts a new generation. A callback whose
// generation is no longer current is dropped even if its timer could not be
// stopped in time, so at most one scheduled function runs per generation.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	gen   uint64
	timer Timer
}

// NewScheduler returns a Scheduler using clock, or the real clock if nil.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock()
	}
	return &Scheduler{clock: clock}
}

// Schedule cancels any pending wake-up and runs fn once after d.
func (s *Scheduler) Schedule(d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	gen := s.gen
	s.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if gen != s.gen {
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		fn()
	})
}

// Stop cancels the pending wake-up, if any.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Pending reports whether a wake-up is scheduled and has not fired.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timer != nil
}

func (s *Scheduler) cancelLocked() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
