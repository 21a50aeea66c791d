package rounds

import (
	"encoding/json"
	"sync"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// MockStore is a mock implementation of the RoundStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UpsertRoundFunc            func(r *golf.Round, config json.RawMessage) error
	GetRoundFunc               func(roundID string) (*Record, error)
	GetAllRoundsFunc           func() ([]*Record, error)
	GetRoundsForProcessingFunc func() ([]*Record, error)
	UpdateProcessingStatusFunc func(roundID string, status ProcessingStatus) error
	SetResultFunc              func(roundID, summary string, result json.RawMessage) error
	SetPaymentsFunc            func(roundID string, payments []settlement.Payable) error
	UpsertPlayersFunc          func(players []PlayerInfo) error
	GetAllPlayersFunc          func() ([]PlayerInfo, error)
	IsKnownPlayerFunc          func(playerID string) bool
	ClearFunc                  func()
	ClearRoundFunc             func(roundID string)

	// Call records
	UpsertRoundCalls            []*golf.Round
	UpdateProcessingStatusCalls []struct {
		RoundID string
		Status  ProcessingStatus
	}
	SetResultCalls []struct {
		RoundID string
		Summary string
	}
	SetPaymentsCalls []struct {
		RoundID  string
		Payments []settlement.Payable
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) UpsertRound(r *golf.Round, config json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertRoundCalls = append(m.UpsertRoundCalls, r)
	if m.UpsertRoundFunc != nil {
		return m.UpsertRoundFunc(r, config)
	}
	return nil
}

func (m *MockStore) GetRound(roundID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRoundFunc != nil {
		return m.GetRoundFunc(roundID)
	}
	return nil, nil
}

func (m *MockStore) GetAllRounds() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllRoundsFunc != nil {
		return m.GetAllRoundsFunc()
	}
	return nil, nil
}

func (m *MockStore) GetRoundsForProcessing() ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRoundsForProcessingFunc != nil {
		return m.GetRoundsForProcessingFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProcessingStatus(roundID string, status ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateProcessingStatusCalls = append(m.UpdateProcessingStatusCalls, struct {
		RoundID string
		Status  ProcessingStatus
	}{roundID, status})
	if m.UpdateProcessingStatusFunc != nil {
		return m.UpdateProcessingStatusFunc(roundID, status)
	}
	return nil
}

func (m *MockStore) SetResult(roundID, summary string, result json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetResultCalls = append(m.SetResultCalls, struct {
		RoundID string
		Summary string
	}{roundID, summary})
	if m.SetResultFunc != nil {
		return m.SetResultFunc(roundID, summary, result)
	}
	return nil
}

func (m *MockStore) SetPayments(roundID string, payments []settlement.Payable) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetPaymentsCalls = append(m.SetPaymentsCalls, struct {
		RoundID  string
		Payments []settlement.Payable
	}{roundID, payments})
	if m.SetPaymentsFunc != nil {
		return m.SetPaymentsFunc(roundID, payments)
	}
	return nil
}

func (m *MockStore) UpsertPlayers(players []PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertPlayersFunc != nil {
		return m.UpsertPlayersFunc(players)
	}
	return nil
}

func (m *MockStore) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(playerID)
	}
	return false
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}

func (m *MockStore) ClearRound(roundID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearRoundFunc != nil {
		m.ClearRoundFunc(roundID)
	}
}
