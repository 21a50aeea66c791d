package rounds

import (
	"encoding/json"
	"time"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// ProcessingStatus tracks a round through the settlement pipeline.
type ProcessingStatus string

const (
	StatusNew       ProcessingStatus = "NEW"
	StatusScored    ProcessingStatus = "SCORED"
	StatusSettled   ProcessingStatus = "SETTLED"
	StatusAnnounced ProcessingStatus = "ANNOUNCED"
	StatusCompleted ProcessingStatus = "COMPLETED"
)

// PlayerInfo is an entry in the club's player registry.
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
}

// Record is a round plus its pipeline state. Config holds the wager
// configuration as submitted; Result and Payments fill in as the
// processor advances the record.
type Record struct {
	Round            *golf.Round          `json:"round"`
	Config           json.RawMessage      `json:"config,omitempty"`
	ProcessingStatus ProcessingStatus     `json:"processing_status"`
	Summary          string               `json:"summary,omitempty"`
	Result           json.RawMessage      `json:"result,omitempty"`
	Payments         []settlement.Payable `json:"payments,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}
