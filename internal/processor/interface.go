package processor

import (
	"encoding/json"

	"github.com/pinseekr/pinseekr-server/internal/notifier"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// Store defines the database operations required by the processor.
type Store interface {
	GetRoundsForProcessing() ([]*rounds.Record, error)
	UpdateProcessingStatus(roundID string, status rounds.ProcessingStatus) error
	SetResult(roundID, summary string, result json.RawMessage) error
	SetPayments(roundID string, payments []settlement.Payable) error
	UpsertPlayers(players []rounds.PlayerInfo) error
}

// Notifier defines the notification operations required by the processor.
// This is now an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
