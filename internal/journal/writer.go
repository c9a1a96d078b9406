package journal

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/encounter"
	"github.com/ConserveLee/barricade-timer/internal/logger"
)

const writeTimeout = 2 * time.Second

type op struct {
	encounter *Encounter
	event     *Event
}

// Writer records encounter history without blocking the caller. Entries are
// queued and written by Run; when the queue is full they are dropped.
//
// BeginEncounter and Record must be called from a single goroutine (the
// encounter loop).
type Writer struct {
	store   *Store
	log     logger.Logger
	queue   chan op
	current string
	dropped atomic.Int64
	newID   func() string
}

// NewWriter creates a writer with a queue of constants.JournalBuffer entries.
func NewWriter(store *Store, log logger.Logger) *Writer {
	return &Writer{
		store: store,
		log:   log,
		queue: make(chan op, constants.JournalBuffer),
		newID: uuid.NewString,
	}
}

var _ encounter.Recorder = (*Writer)(nil)

// BeginEncounter starts a new encounter row.
func (w *Writer) BeginEncounter(at time.Time) {
	w.current = w.newID()
	w.enqueue(op{encounter: &Encounter{ID: w.current, StartedAt: at}})
}

// Record appends a matched line to the current encounter. Lines that arrive
// before the first encounter are ignored.
func (w *Writer) Record(e encounter.Entry) {
	if w.current == "" {
		return
	}
	w.enqueue(op{event: &Event{
		EncounterID: w.current,
		At:          e.At,
		Rule:        e.Event.Rule,
		Kind:        e.Event.Kind.String(),
		Detail:      e.Event.String(),
		Line:        e.Line,
	}})
}

// Current returns the id of the open encounter.
func (w *Writer) Current() string {
	return w.current
}

// Dropped returns how many entries were lost to a full queue.
func (w *Writer) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Writer) enqueue(o op) {
	select {
	case w.queue <- o:
	default:
		if w.dropped.Add(1) == 1 {
			w.log.Error("Journal queue full, dropping entries")
		}
	}
}

// Run writes queued entries until ctx is done, then drains what is left.
func (w *Writer) Run(ctx context.Context) {
	for {
		select {
		case o := <-w.queue:
			w.write(o)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// Start runs the writer in the background. The returned stop function
// cancels it, waits for the queue to drain and then closes the store. Call
// stop only after the last BeginEncounter or Record.
func (w *Writer) Start(ctx context.Context) (stop func() error) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()
	return func() error {
		cancel()
		<-done
		return w.store.Close()
	}
}

func (w *Writer) drain() {
	for {
		select {
		case o := <-w.queue:
			w.write(o)
		default:
			return
		}
	}
}

// write outlives Run's context so the final drain can still land.
func (w *Writer) write(o op) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	var err error
	switch {
	case o.encounter != nil:
		err = w.store.InsertEncounter(ctx, *o.encounter)
	case o.event != nil:
		err = w.store.InsertEvent(ctx, *o.event)
	}
	if err != nil {
		w.log.Error("Journal write failed: %v", err)
	}
}
