package scheduler

import (
	"sort"
	"time"
)

// Manual is a virtual-clock Scheduler. Nothing happens until Advance is
// called, which makes timer-driven behaviour deterministic in tests and in
// the replay tool's fast mode.
type Manual struct {
	now     time.Time
	seq     int
	pending []*manualTimer
}

// NewManual creates a scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

type manualTimer struct {
	m       *Manual
	when    time.Time
	every   time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	t.m.remove(t)
	return true
}

// Now returns the virtual clock.
func (m *Manual) Now() time.Time {
	return m.now
}

// Post runs fn immediately; callers of a Manual scheduler are already on
// the loop.
func (m *Manual) Post(fn func()) {
	fn()
}

// AfterFunc schedules fn at now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Handle {
	return m.add(d, 0, fn)
}

// Every schedules fn at now+d, now+2d, ...
func (m *Manual) Every(d time.Duration, fn func()) Handle {
	return m.add(d, d, fn)
}

func (m *Manual) add(d, every time.Duration, fn func()) *manualTimer {
	m.seq++
	t := &manualTimer{m: m, when: m.now.Add(d), every: every, seq: m.seq, fn: fn}
	m.pending = append(m.pending, t)
	return t
}

func (m *Manual) remove(t *manualTimer) {
	for i, p := range m.pending {
		if p == t {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Pending returns the number of scheduled callbacks.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d, running every callback that falls
// due in time order. Callbacks scheduled while advancing also run if they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.next(target)
		if next == nil {
			break
		}
		m.now = next.when
		if next.every > 0 {
			next.seq = m.nextSeq()
			next.when = next.when.Add(next.every)
		} else {
			next.stopped = true
			m.remove(next)
		}
		next.fn()
	}
	m.now = target
}

// AdvanceTo moves the clock to t (no-op when t is not after now).
func (m *Manual) AdvanceTo(t time.Time) {
	if t.After(m.now) {
		m.Advance(t.Sub(m.now))
	}
}

func (m *Manual) nextSeq() int {
	m.seq++
	return m.seq
}

func (m *Manual) next(limit time.Time) *manualTimer {
	if len(m.pending) == 0 {
		return nil
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if !m.pending[i].when.Equal(m.pending[j].when) {
			return m.pending[i].when.Before(m.pending[j].when)
		}
		return m.pending[i].seq < m.pending[j].seq
	})
	first := m.pending[0]
	if first.when.After(limit) {
		return nil
	}
	return first
}
