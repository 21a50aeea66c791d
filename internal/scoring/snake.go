package scoring

import (
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// SnakeResult tracks the three-putt snake. Passes counts transfers only;
// picking the snake up is not a pass, and by default neither is a
// holder's own repeat three-putt.
type SnakeResult struct {
	ThreePutts map[string]int       `json:"three_putts"`
	Passes     int                  `json:"passes"`
	HolderID   string               `json:"holder_id,omitempty"`
	HolderName string               `json:"holder_name,omitempty"`
	Payables   []settlement.Payable `json:"payables,omitempty"`
}

// Summary names the final snake holder.
func (r *SnakeResult) Summary() string {
	if r.HolderID == "" {
		return "no three-putts, snake never picked up"
	}
	return fmt.Sprintf("%s holds the snake after %d passes", r.HolderName, r.Passes)
}

// Snake walks the round in play order: holes outermost, players in round
// order within a hole. The first three-putt picks the snake up; each
// later three-putt by a different player takes it from the current
// holder. A holder three-putting again keeps the snake where it is
// unless TransferOnRepeat counts it as a pass back to themselves.
//
// Whoever holds the snake after the last hole pays the penalty, either
// to the configured recipient or split across the rest of the group.
func Snake(r *golf.Round, cfg SnakeConfig) *SnakeResult {
	result := &SnakeResult{ThreePutts: make(map[string]int, len(r.Players))}

	var holder *golf.Player
	for i := range r.Holes {
		for j := range r.Players {
			p := &r.Players[j]
			if i >= len(p.Stats) || p.Stats[i].Putts < 3 {
				continue
			}
			result.ThreePutts[p.ID]++
			switch {
			case holder == nil:
				holder = p
			case holder.ID != p.ID:
				result.Passes++
				holder = p
			case cfg.TransferOnRepeat:
				result.Passes++
			}
		}
	}

	if holder == nil {
		return result
	}
	result.HolderID = holder.ID
	result.HolderName = holder.Name

	if cfg.PenaltySats <= 0 {
		return result
	}
	if !cfg.DistributeToGroup && cfg.RecipientID != "" && cfg.RecipientID != holder.ID {
		result.Payables = []settlement.Payable{{From: holder.ID, To: cfg.RecipientID, Amount: cfg.PenaltySats}}
		return result
	}

	// Split the penalty across everyone else, remainder on the earliest
	// players in round order.
	var rest []string
	for j := range r.Players {
		if r.Players[j].ID != holder.ID {
			rest = append(rest, r.Players[j].ID)
		}
	}
	n := int64(len(rest))
	if n == 0 {
		return result
	}
	base, rem := cfg.PenaltySats/n, cfg.PenaltySats%n
	for i, id := range rest {
		share := base
		if int64(i) < rem {
			share++
		}
		if share > 0 {
			result.Payables = append(result.Payables, settlement.Payable{From: holder.ID, To: id, Amount: share})
		}
	}
	return result
}
