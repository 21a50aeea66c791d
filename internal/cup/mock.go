package cup

import "sync"

// MockStore is a mock implementation of the CupService interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateCupFunc       func(name string, players []Player) (*Cup, error)
	GetCupFunc          func(cupID string) (*Cup, error)
	ListCupsFunc        func() ([]*Cup, error)
	SaveCupFunc         func(c *Cup) error
	SaveRoundResultFunc func(res *RoundResult) error
	GetRoundResultsFunc func(cupID string) ([]RoundResult, error)
	ClearFunc           func()

	// Call records
	CreateCupCalls       []string
	SaveCupCalls         []*Cup
	SaveRoundResultCalls []*RoundResult
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateCup(name string, players []Player) (*Cup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCupCalls = append(m.CreateCupCalls, name)
	if m.CreateCupFunc != nil {
		return m.CreateCupFunc(name, players)
	}
	return NewCup(name, players)
}

func (m *MockStore) GetCup(cupID string) (*Cup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetCupFunc != nil {
		return m.GetCupFunc(cupID)
	}
	return nil, nil
}

func (m *MockStore) ListCups() ([]*Cup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListCupsFunc != nil {
		return m.ListCupsFunc()
	}
	return nil, nil
}

func (m *MockStore) SaveCup(c *Cup) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCupCalls = append(m.SaveCupCalls, c)
	if m.SaveCupFunc != nil {
		return m.SaveCupFunc(c)
	}
	return nil
}

func (m *MockStore) SaveRoundResult(res *RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveRoundResultCalls = append(m.SaveRoundResultCalls, res)
	if m.SaveRoundResultFunc != nil {
		return m.SaveRoundResultFunc(res)
	}
	return nil
}

func (m *MockStore) GetRoundResults(cupID string) ([]RoundResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRoundResultsFunc != nil {
		return m.GetRoundResultsFunc(cupID)
	}
	return nil, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
