package rounds

import (
	"encoding/json"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// RoundStore is the system of record for rounds and the player registry.
type RoundStore interface {
	// UpsertRound inserts a round or updates an existing one. It is
	// "dumb": on conflict it refreshes the card but never touches the
	// processing status, so a re-submitted scorecard cannot rewind the
	// pipeline.
	UpsertRound(r *golf.Round, config json.RawMessage) error

	// GetRound retrieves a round record by ID.
	GetRound(roundID string) (*Record, error)

	// GetAllRounds returns every stored round, newest first.
	GetAllRounds() ([]*Record, error)

	// GetRoundsForProcessing returns rounds that have not yet completed
	// the pipeline.
	GetRoundsForProcessing() ([]*Record, error)

	// UpdateProcessingStatus transitions a round to a new pipeline state.
	UpdateProcessingStatus(roundID string, status ProcessingStatus) error

	// SetResult stores the scoring outcome for a round.
	SetResult(roundID, summary string, result json.RawMessage) error

	// SetPayments stores the netted settlement for a round.
	SetPayments(roundID string, payments []settlement.Payable) error

	// UpsertPlayers adds or refreshes entries in the player registry.
	UpsertPlayers(players []PlayerInfo) error

	// GetAllPlayers returns the registry sorted by name.
	GetAllPlayers() ([]PlayerInfo, error)

	// IsKnownPlayer reports whether a player exists in the registry.
	IsKnownPlayer(playerID string) bool

	// Clear wipes all rounds and players.
	Clear()

	// ClearRound removes a single round.
	ClearRound(roundID string)
}
