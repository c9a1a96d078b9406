package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

type fakeSource struct {
	locateErr error
	pollErr   error
	lines     []string
	available bool
	locates   int
	polls     int
}

func (f *fakeSource) Locate() error {
	f.locates++
	if f.locateErr == nil {
		f.available = true
	}
	return f.locateErr
}

func (f *fakeSource) Poll() ([]string, error) {
	f.polls++
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	out := f.lines
	f.lines = nil
	return out, nil
}

func (f *fakeSource) Available() bool { return f.available }

type fakeSink struct {
	lines     []string
	searching int
	found     int
	failures  []string
}

func (s *fakeSink) HandleLine(raw string) trigger.Event {
	s.lines = append(s.lines, raw)
	return trigger.Event{}
}
func (s *fakeSink) SourceSearching()        { s.searching++ }
func (s *fakeSink) SourceFound()            { s.found++ }
func (s *fakeSink) SourceFailed(msg string) { s.failures = append(s.failures, msg) }

// newTestMonitor posts synchronously so processState can be driven directly.
func newTestMonitor(src *fakeSource) (*Monitor, *fakeSink) {
	sink := &fakeSink{}
	m := NewMonitor(src, sink, func(fn func()) { fn() }, logger.Discard)
	m.State = StateAcquiring
	return m, sink
}

func TestMonitorAcquiresThenPolls(t *testing.T) {
	src := &fakeSource{locateErr: screen.ErrNotFound}
	m, sink := newTestMonitor(src)

	if next := m.processState(); next != constants.AcquireInterval {
		t.Errorf("expected acquire interval, got %v", next)
	}
	if m.State != StateAcquiring {
		t.Fatalf("expected acquiring, got %v", m.State)
	}
	if len(sink.failures) != 0 {
		t.Errorf("not-found should not surface as a failure: %v", sink.failures)
	}

	src.locateErr = nil
	m.processState()
	if m.State != StateMonitoring || sink.found != 1 {
		t.Fatalf("expected monitoring with one found, got %v / %d", m.State, sink.found)
	}

	src.lines = []string{"00:12:45 Tear them apart", "00:12:46 Enough"}
	if next := m.processState(); next != constants.PollInterval {
		t.Errorf("expected poll interval, got %v", next)
	}
	if len(sink.lines) != 2 || sink.lines[1] != "00:12:46 Enough" {
		t.Errorf("lines not forwarded in order: %v", sink.lines)
	}
}

func TestMonitorLosesChatbox(t *testing.T) {
	src := &fakeSource{}
	m, sink := newTestMonitor(src)
	m.processState()

	src.pollErr = fmt.Errorf("poll: %w", screen.ErrNotFound)
	m.processState()
	if m.State != StateAcquiring {
		t.Fatalf("expected acquiring after losing the anchor, got %v", m.State)
	}
	if sink.searching != 1 {
		t.Errorf("expected searching status once, got %d", sink.searching)
	}

	src.pollErr = nil
	m.processState()
	if m.State != StateMonitoring || sink.found != 2 {
		t.Errorf("expected reacquired, got %v / found %d", m.State, sink.found)
	}
}

func TestMonitorUnavailableSource(t *testing.T) {
	src := &fakeSource{}
	m, _ := newTestMonitor(src)
	m.processState()

	src.available = false
	m.processState()
	if m.State != StateAcquiring {
		t.Errorf("expected acquiring, got %v", m.State)
	}
	if src.polls != 0 {
		t.Errorf("unavailable source was polled %d times", src.polls)
	}
}

func TestMonitorReportsErrorsOnce(t *testing.T) {
	src := &fakeSource{locateErr: fmt.Errorf("capture: %w", screen.ErrPermission)}
	m, sink := newTestMonitor(src)

	m.processState()
	m.processState()
	m.processState()
	if len(sink.failures) != 1 {
		t.Fatalf("expected one failure report, got %v", sink.failures)
	}
	if sink.failures[0] != constants.MsgErrPermission {
		t.Errorf("failure = %q", sink.failures[0])
	}

	src.locateErr = screen.ErrNoDisplay
	m.processState()
	if len(sink.failures) != 2 || sink.failures[1] != constants.MsgErrNotFound {
		t.Errorf("changed error should be reported: %v", sink.failures)
	}
}

func TestMonitorPollErrorKeepsMonitoring(t *testing.T) {
	src := &fakeSource{}
	m, sink := newTestMonitor(src)
	m.processState()

	src.pollErr = errors.New("ocr failed")
	if next := m.processState(); next != constants.PollInterval {
		t.Errorf("expected poll interval, got %v", next)
	}
	if m.State != StateMonitoring {
		t.Errorf("expected monitoring, got %v", m.State)
	}
	if len(sink.failures) != 1 || sink.failures[0] != constants.MsgErrUnknown {
		t.Errorf("failures = %v", sink.failures)
	}
}

func TestMonitorStartStop(t *testing.T) {
	src := &fakeSource{}
	sink := &fakeSink{}
	posted := make(chan func(), 64)
	m := NewMonitor(src, sink, func(fn func()) {
		select {
		case posted <- fn:
		default:
		}
	}, logger.Discard)
	m.Config.PollInterval = 5 * time.Millisecond

	m.Start()
	m.Start()
	time.Sleep(30 * time.Millisecond)
	m.Stop()
	m.Stop()

	if m.State != StateStopped {
		t.Errorf("expected stopped, got %v", m.State)
	}
	if src.locates != 1 {
		t.Errorf("expected one locate, got %d", src.locates)
	}
	if src.polls == 0 {
		t.Error("expected the monitor to poll")
	}
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{screen.ErrNotFound, constants.MsgLookingForChat},
		{fmt.Errorf("x: %w", screen.ErrNoDisplay), constants.MsgErrNotFound},
		{screen.ErrPermission, constants.MsgErrPermission},
		{screen.ErrNoAnchor, constants.MsgErrNoAnchor},
		{errors.New("boom"), constants.MsgErrUnknown},
	}
	for _, tc := range tests {
		if got := StatusMessage(tc.err); got != tc.want {
			t.Errorf("StatusMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
