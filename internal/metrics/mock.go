package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	roundsScored        int
	settlementsComputed int
	scoringDurations    []float64
	slackNotifSent      int
	slackNotifFailed    int
	eventsPublished     int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		scoringDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRoundsScored() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roundsScored++
}

func (m *Mock) IncSettlementsComputed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlementsComputed++
}

func (m *Mock) ObserveScoringDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoringDurations = append(m.scoringDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncEventsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RoundsScored returns the number of times IncRoundsScored was called.
func (m *Mock) RoundsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roundsScored
}

// SettlementsComputed returns the number of times IncSettlementsComputed was called.
func (m *Mock) SettlementsComputed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settlementsComputed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// EventsPublished returns the number of times IncEventsPublished was called.
func (m *Mock) EventsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished
}
