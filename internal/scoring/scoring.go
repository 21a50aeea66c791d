// Package scoring holds the format engines: pure functions that take a
// round snapshot and compute the game's outcome plus the monetary
// obligations it creates. Engines never touch storage or the network and
// are deterministic for a given input.
package scoring

import (
	"errors"
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

var ErrTwoPlayers = errors.New("match play requires exactly two sides")

// Result is the format-independent envelope handed to the shell: a
// one-line summary for notifications, the raw obligations for the netter
// and the format-specific detail for rendering.
type Result struct {
	Mode     golf.GameMode        `json:"mode"`
	Summary  string               `json:"summary"`
	Payables []settlement.Payable `json:"payables,omitempty"`
	Detail   any                  `json:"detail"`
}

// Score runs the engine matching the config's game mode.
func Score(r *golf.Round, cfg Config) (*Result, error) {
	switch c := cfg.(type) {
	case StrokeConfig:
		res := StrokePlay(r, c)
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Detail: res}, nil
	case MatchConfig:
		res, err := MatchPlay(r, c)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: c.Mode(), Summary: res.Summary, Payables: res.Payables, Detail: res}, nil
	case NassauConfig:
		res, err := Nassau(r, c)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Payables: res.Payables, Detail: res}, nil
	case SkinsConfig:
		res := Skins(r, c)
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Payables: res.Payables, Detail: res}, nil
	case StablefordConfig:
		res := Stableford(r, c)
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Payables: res.Payables, Detail: res}, nil
	case DotsConfig:
		res := Dots(r, c)
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Payables: res.Payables, Detail: res}, nil
	case SnakeConfig:
		res := Snake(r, c)
		return &Result{Mode: c.Mode(), Summary: res.Summary(), Payables: res.Payables, Detail: res}, nil
	default:
		return nil, fmt.Errorf("unsupported game config %T", cfg)
	}
}

// holeScore is the score used for comparison on hole index i: gross, or
// handicap-adjusted when the wager plays net.
func holeScore(p *golf.Player, i int, holes []golf.Hole, useNet bool) int {
	if useNet {
		return p.NetScore(i, holes)
	}
	return p.Scores[i]
}

// playerTotal is the round total used for ranking, gross or net.
func playerTotal(p *golf.Player, holes []golf.Hole, useNet bool) int {
	if useNet {
		return p.NetTotal(holes)
	}
	return p.Total()
}

// splitAmong distributes amount across the given payers as payables to a
// single receiver, spreading the integer remainder over the first payers
// so the total paid equals the amount exactly.
func splitAmong(payers []string, to string, amount int64) []settlement.Payable {
	if len(payers) == 0 || amount <= 0 {
		return nil
	}
	n := int64(len(payers))
	base := amount / n
	rem := amount % n
	payables := make([]settlement.Payable, 0, len(payers))
	for i, from := range payers {
		share := base
		if int64(i) < rem {
			share++
		}
		if share == 0 {
			continue
		}
		payables = append(payables, settlement.Payable{From: from, To: to, Amount: share})
	}
	return payables
}
