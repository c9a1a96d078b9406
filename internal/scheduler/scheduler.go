// Package scheduler runs encounter callbacks on a single logical thread.
//
// Every timer is cancelable through its Handle. Once Stop has been called on
// the loop goroutine the callback is guaranteed not to run, which is what the
// encounter reset relies on.
package scheduler

import "time"

// Handle cancels a scheduled one-shot or repeating callback.
type Handle interface {
	// Stop prevents any further runs. It reports whether the callback was
	// still pending.
	Stop() bool
}

// Scheduler is the event loop the encounter engine runs on.
type Scheduler interface {
	Now() time.Time
	// AfterFunc runs fn once on the loop after d.
	AfterFunc(d time.Duration, fn func()) Handle
	// Every runs fn on the loop every d until stopped. The first run is after d.
	Every(d time.Duration, fn func()) Handle
	// Post queues fn to run on the loop.
	Post(fn func())
}

// Slot holds at most one pending handle. Scheduling through a slot always
// stops the previous handle first, so two callbacks for the same slot can
// never be pending at once.
type Slot struct {
	h Handle
}

// After replaces the slot's callback with a one-shot.
func (s *Slot) After(sched Scheduler, d time.Duration, fn func()) {
	s.Stop()
	var h Handle
	h = sched.AfterFunc(d, func() {
		if s.h == h {
			s.h = nil
		}
		fn()
	})
	s.h = h
}

// Every replaces the slot's callback with a repeating one.
func (s *Slot) Every(sched Scheduler, d time.Duration, fn func()) {
	s.Stop()
	s.h = sched.Every(d, fn)
}

// Stop cancels the pending callback, if any.
func (s *Slot) Stop() bool {
	if s.h == nil {
		return false
	}
	stopped := s.h.Stop()
	s.h = nil
	return stopped
}

// Pending reports whether the slot holds a callback that has not finished.
func (s *Slot) Pending() bool {
	return s.h != nil
}
