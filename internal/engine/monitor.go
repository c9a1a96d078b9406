package engine

import (
	"sync"
	"time"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/logger"
	"github.com/ConserveLee/barricade-timer/internal/trigger"
)

// MonitorState is the ingestion phase.
type MonitorState int

const (
	StateStopped    MonitorState = iota
	StateAcquiring               // Looking for the chatbox
	StateMonitoring              // Reading chat lines
)

func (s MonitorState) String() string {
	switch s {
	case StateAcquiring:
		return "acquiring"
	case StateMonitoring:
		return "monitoring"
	default:
		return "stopped"
	}
}

// LineSource produces chat lines. Locate and Poll may block on capture and
// OCR; they are only called from the monitor goroutine.
type LineSource interface {
	Locate() error
	Poll() ([]string, error)
	Available() bool
}

// Sink is the encounter side. Its methods only run on the scheduler loop.
type Sink interface {
	HandleLine(raw string) trigger.Event
	SourceSearching()
	SourceFound()
	SourceFailed(msg string)
}

// MonitorConfig holds the polling cadence.
type MonitorConfig struct {
	AcquireInterval time.Duration // Retry interval while acquiring
	PollInterval    time.Duration // Read interval while monitoring
}

// Monitor polls the line source and forwards lines to the sink. Capture and
// OCR run on the monitor goroutine; everything touching the encounter is
// posted onto the loop.
type Monitor struct {
	State  MonitorState
	Config MonitorConfig

	source LineSource
	sink   Sink
	post   func(func())
	log    logger.Logger

	lastErr string // Suppresses repeats of the same failure

	stopChan chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
}

// NewMonitor creates a stopped monitor. post must queue a callback on the
// encounter's loop.
func NewMonitor(source LineSource, sink Sink, post func(func()), log logger.Logger) *Monitor {
	return &Monitor{
		State:  StateStopped,
		source: source,
		sink:   sink,
		post:   post,
		log:    log,
		Config: MonitorConfig{
			AcquireInterval: constants.AcquireInterval,
			PollInterval:    constants.PollInterval,
		},
		stopChan: make(chan struct{}),
	}
}

func (m *Monitor) setState(s MonitorState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.State = s
}

func (m *Monitor) state() MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State
}

// Start begins acquiring.
func (m *Monitor) Start() {
	m.mu.Lock()
	if m.State != StateStopped {
		m.mu.Unlock()
		return
	}
	m.State = StateAcquiring
	m.stopChan = make(chan struct{}) // Re-make channel for restart ability
	m.lastErr = ""
	m.mu.Unlock()

	m.log.Info("Chat monitor started. Looking for chatbox...")
	m.post(m.sink.SourceSearching)
	m.wg.Add(1)
	go m.loop()
}

// Stop ends the monitor goroutine. Encounter state is untouched.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.State == StateStopped {
		m.mu.Unlock()
		return
	}
	close(m.stopChan)
	m.mu.Unlock()

	// processState takes the lock, so wait outside it.
	m.wg.Wait()
	m.setState(StateStopped)
	m.log.Info("Chat monitor stopped.")
}

func (m *Monitor) loop() {
	defer m.wg.Done()
	timer := time.NewTimer(0)

	for {
		select {
		case <-m.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			next := m.processState()
			timer.Reset(next)
		}
	}
}

func (m *Monitor) processState() time.Duration {
	switch m.state() {
	case StateAcquiring:
		return m.handleAcquiring()
	case StateMonitoring:
		return m.handleMonitoring()
	default:
		return m.Config.AcquireInterval
	}
}

func (m *Monitor) handleAcquiring() time.Duration {
	if err := m.source.Locate(); err != nil {
		m.report(err)
		return m.Config.AcquireInterval
	}

	m.lastErr = ""
	m.log.Info("Chatbox found. Monitoring chat...")
	m.setState(StateMonitoring)
	m.post(m.sink.SourceFound)
	return 0
}

func (m *Monitor) handleMonitoring() time.Duration {
	if !m.source.Available() {
		m.lose("Chatbox unavailable")
		return 0
	}

	lines, err := m.source.Poll()
	if err != nil {
		if transient(err) {
			m.lose(err.Error())
			return 0
		}
		m.report(err)
		return m.Config.PollInterval
	}
	m.lastErr = ""

	if len(lines) > 0 {
		m.log.Debug("[Monitor] %d lines read", len(lines))
		m.post(func() {
			for _, l := range lines {
				m.sink.HandleLine(l)
			}
		})
	}
	return m.Config.PollInterval
}

// lose returns to acquiring. The encounter keeps running.
func (m *Monitor) lose(reason string) {
	m.log.Info("Chatbox lost (%s). Looking for chatbox...", reason)
	m.setState(StateAcquiring)
	m.post(m.sink.SourceSearching)
}

// report surfaces a locate or poll failure. Repeats of the same failure are
// only logged at debug level.
func (m *Monitor) report(err error) {
	msg := err.Error()
	if msg == m.lastErr {
		m.log.Debug("[Monitor] %v", err)
		return
	}
	m.lastErr = msg

	if transient(err) {
		m.log.Debug("[Monitor] %v", err)
		return
	}
	m.log.Error("Chat source error: %v", err)
	status := StatusMessage(err)
	m.post(func() { m.sink.SourceFailed(status) })
}
