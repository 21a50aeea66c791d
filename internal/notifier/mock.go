package notifier

import (
	"sync"

	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/expenses"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendRoundResultFunc    func(rec *rounds.Record, dryRun bool) (string, error)
	SendSettlementFunc     func(rec *rounds.Record, dryRun bool) (string, error)
	SendCupStandingsFunc   func(c *cup.Cup, standings cup.Standings, dryRun bool) error
	SendExpenseSummaryFunc func(summary *expenses.Summary, dryRun bool) error

	FormatRoundResultResponseFunc  func(rec *rounds.Record) (any, error)
	FormatCupStandingsResponseFunc func(c *cup.Cup, standings cup.Standings) (any, error)

	// Call records
	SendRoundResultCalls    []*rounds.Record
	SendSettlementCalls     []*rounds.Record
	SendCupStandingsCalls   []cup.Standings
	SendExpenseSummaryCalls []*expenses.Summary
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = nil
	m.SendSettlementCalls = nil
	m.SendCupStandingsCalls = nil
	m.SendExpenseSummaryCalls = nil
}

func (m *Mock) SendRoundResult(rec *rounds.Record, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRoundResultCalls = append(m.SendRoundResultCalls, rec)
	if m.SendRoundResultFunc != nil {
		return m.SendRoundResultFunc(rec, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendSettlement(rec *rounds.Record, dryRun bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSettlementCalls = append(m.SendSettlementCalls, rec)
	if m.SendSettlementFunc != nil {
		return m.SendSettlementFunc(rec, dryRun)
	}
	return "mock-ts", nil
}

func (m *Mock) SendCupStandings(c *cup.Cup, standings cup.Standings, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCupStandingsCalls = append(m.SendCupStandingsCalls, standings)
	if m.SendCupStandingsFunc != nil {
		return m.SendCupStandingsFunc(c, standings, dryRun)
	}
	return nil
}

func (m *Mock) SendExpenseSummary(summary *expenses.Summary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendExpenseSummaryCalls = append(m.SendExpenseSummaryCalls, summary)
	if m.SendExpenseSummaryFunc != nil {
		return m.SendExpenseSummaryFunc(summary, dryRun)
	}
	return nil
}

func (m *Mock) FormatRoundResultResponse(rec *rounds.Record) (any, error) {
	if m.FormatRoundResultResponseFunc != nil {
		return m.FormatRoundResultResponseFunc(rec)
	}
	return map[string]any{"summary": rec.Summary}, nil
}

func (m *Mock) FormatCupStandingsResponse(c *cup.Cup, standings cup.Standings) (any, error) {
	if m.FormatCupStandingsResponseFunc != nil {
		return m.FormatCupStandingsResponseFunc(c, standings)
	}
	return map[string]any{"points": standings.Points}, nil
}
