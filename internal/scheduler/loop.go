package scheduler

import (
	"sync"
	"sync/atomic"
	"time"
)

// LoopStatus represents whether the loop goroutine is running
type LoopStatus int

const (
	StatusStopped LoopStatus = iota
	StatusRunning
)

// Loop is the real-time Scheduler: one goroutine drains a queue of
// callbacks, and wall-clock timers only enqueue.
type Loop struct {
	Status LoopStatus

	queue    chan func()
	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewLoop creates a stopped loop.
func NewLoop() *Loop {
	return &Loop{
		Status:   StatusStopped,
		queue:    make(chan func(), 64),
		stopChan: make(chan struct{}),
	}
}

// Start begins draining the queue
func (l *Loop) Start() {
	l.mu.Lock()
	if l.Status == StatusRunning {
		l.mu.Unlock()
		return
	}
	l.Status = StatusRunning
	l.stopChan = make(chan struct{}) // Re-make channel for restart ability
	l.mu.Unlock()

	l.wg.Add(1)
	go l.run()
}

// Stop ends the loop goroutine. Queued callbacks that have not run are dropped.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Status == StatusStopped {
		return
	}

	close(l.stopChan)
	l.wg.Wait()
	l.Status = StatusStopped
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopChan:
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Now returns the wall clock.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn. It gives up silently once the loop is stopped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	stop := l.stopChan
	l.mu.Unlock()

	select {
	case l.queue <- fn:
	case <-stop:
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Handle {
	t := &loopTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

// Every runs fn on the loop every d. The next run is armed only after the
// current one returns, so ticks never pile up in the queue.
func (l *Loop) Every(d time.Duration, fn func()) Handle {
	t := &loopTimer{}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			fn()
			if !t.stopped.Load() {
				t.mu.Lock()
				t.timer.Reset(d)
				t.mu.Unlock()
			}
		})
	})
	return t
}

// loopTimer's timer field is written while the first fire may already be
// running, so it is only touched under mu.
type loopTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped atomic.Bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.mu.Lock()
	t.timer.Stop()
	t.mu.Unlock()
	return true
}
