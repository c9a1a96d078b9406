package scheduler

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestManualRunsCallbacksInTimeOrder(t *testing.T) {
	m := NewManual(epoch)
	var got []string

	m.AfterFunc(3*time.Second, func() { got = append(got, "c") })
	m.AfterFunc(1*time.Second, func() { got = append(got, "a") })
	m.AfterFunc(2*time.Second, func() { got = append(got, "b") })

	m.Advance(2 * time.Second)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("after 2s got %v", got)
	}
	m.Advance(time.Second)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 3s got %v", got)
	}
	if m.Pending() != 0 {
		t.Errorf("expected nothing pending, got %d", m.Pending())
	}
}

func TestManualCallbackSeesItsOwnTime(t *testing.T) {
	m := NewManual(epoch)
	var at time.Time
	m.AfterFunc(1500*time.Millisecond, func() { at = m.Now() })

	m.Advance(5 * time.Second)
	if want := epoch.Add(1500 * time.Millisecond); !at.Equal(want) {
		t.Errorf("callback ran at %v, want %v", at, want)
	}
	if want := epoch.Add(5 * time.Second); !m.Now().Equal(want) {
		t.Errorf("clock at %v, want %v", m.Now(), want)
	}
}

func TestManualEveryRepeatsUntilStopped(t *testing.T) {
	m := NewManual(epoch)
	count := 0
	var h Handle
	h = m.Every(100*time.Millisecond, func() {
		count++
		if count == 5 {
			h.Stop()
		}
	})

	m.Advance(2 * time.Second)
	if count != 5 {
		t.Errorf("expected 5 ticks, got %d", count)
	}
	if h.Stop() {
		t.Error("second Stop should report nothing pending")
	}
}

func TestManualStoppedHandleNeverRuns(t *testing.T) {
	m := NewManual(epoch)
	ran := false
	h := m.AfterFunc(time.Second, func() { ran = true })
	if !h.Stop() {
		t.Fatal("Stop on a pending handle should report true")
	}
	m.Advance(time.Minute)
	if ran {
		t.Error("stopped callback ran")
	}
}

func TestSlotReplacesPendingCallback(t *testing.T) {
	m := NewManual(epoch)
	var slot Slot
	var got []string

	slot.After(m, 3*time.Second, func() { got = append(got, "first") })
	m.Advance(time.Second)
	slot.After(m, 3*time.Second, func() { got = append(got, "second") })

	m.Advance(10 * time.Second)
	if len(got) != 1 || got[0] != "second" {
		t.Fatalf("expected only the replacement to run, got %v", got)
	}
	if slot.Pending() {
		t.Error("slot should be empty after its callback ran")
	}
}

func TestSlotCallbackCanRearmItself(t *testing.T) {
	m := NewManual(epoch)
	var slot Slot
	runs := 0

	var arm func()
	arm = func() {
		slot.After(m, time.Second, func() {
			runs++
			if runs < 3 {
				arm()
			}
		})
	}
	arm()

	m.Advance(10 * time.Second)
	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
	if slot.Pending() {
		t.Error("slot should be empty")
	}
}

func TestLoopRunsCallbacksOnOneGoroutine(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var mu sync.Mutex
	var order []int
	done := make(chan struct{})

	for i := 0; i < 3; i++ {
		i := i
		l.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	l.AfterFunc(20*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback never ran")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("posted callbacks ran out of order: %v", order)
	}
}

func TestLoopStopBeforeFireCancels(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	fired := make(chan struct{}, 1)
	h := l.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })

	stopped := make(chan bool, 1)
	l.Post(func() { stopped <- h.Stop() })
	if !<-stopped {
		t.Fatal("expected Stop to cancel a pending timer")
	}

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestLoopEveryTicks(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	ticks := make(chan struct{}, 10)
	h := l.Every(10*time.Millisecond, func() { ticks <- struct{}{} })
	defer h.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}
}

func TestLoopEveryWithTinyInterval(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	ticks := make(chan struct{}, 100)
	for i := 0; i < 20; i++ {
		h := l.Every(time.Nanosecond, func() {
			select {
			case ticks <- struct{}{}:
			default:
			}
		})
		select {
		case <-ticks:
		case <-time.After(2 * time.Second):
			t.Fatalf("handle %d never ticked", i)
		}
		h.Stop()
	}
}
