package scoring

import (
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// SkinHole records the fate of one hole's skin. An empty WinnerID means
// the hole was tied and its value carried.
type SkinHole struct {
	Hole      int    `json:"hole"`
	WinnerID  string `json:"winner_id,omitempty"`
	ValueSats int64  `json:"value_sats"`
	Carried   bool   `json:"carried,omitempty"`
}

// SkinsResult is the hole-by-hole skin ledger. VoidedSats is carry left
// unclaimed when the round ended; ForfeitedSats is carry reset by the
// cap. Neither is paid to anyone.
type SkinsResult struct {
	Holes         []SkinHole           `json:"holes"`
	SkinsWon      map[string]int       `json:"skins_won"`
	WinningsSats  map[string]int64     `json:"winnings_sats"`
	VoidedSats    int64                `json:"voided_sats,omitempty"`
	ForfeitedSats int64                `json:"forfeited_sats,omitempty"`
	Payables      []settlement.Payable `json:"payables,omitempty"`
}

// Summary totals the skins per winner in one line.
func (r *SkinsResult) Summary() string {
	total := 0
	for _, n := range r.SkinsWon {
		total += n
	}
	return fmt.Sprintf("%d skins won over %d holes", total, len(r.Holes))
}

// Skins plays each hole for its skin value. The outright lowest score
// wins the hole's value plus any carry; a tie carries the value onto the
// next hole. When a carry cap is configured and the accumulated carry
// exceeds it, the carry is forfeited and the count restarts. Carry still
// alive after the last hole is voided, not paid.
//
// Losers fund each won skin in equal shares, remainder on the earliest
// players in round order, so the total paid always equals the total won.
func Skins(r *golf.Round, cfg SkinsConfig) *SkinsResult {
	result := &SkinsResult{
		SkinsWon:     make(map[string]int),
		WinningsSats: make(map[string]int64),
	}
	if len(r.Players) == 0 {
		return result
	}

	// Only holes every player has completed are contested.
	contested := len(r.Holes)
	for i := range r.Players {
		if played := r.Players[i].HolesPlayed(); played < contested {
			contested = played
		}
	}

	var carry int64
	for i := 0; i < contested; i++ {
		value := cfg.SkinSats + carry

		best, holders := 0, 0
		var winner *golf.Player
		for j := range r.Players {
			p := &r.Players[j]
			s := holeScore(p, i, r.Holes, cfg.UseNet)
			switch {
			case winner == nil || s < best:
				best, holders, winner = s, 1, p
			case s == best:
				holders++
			}
		}
		if holders > 1 {
			winner = nil
		}

		hole := SkinHole{Hole: r.Holes[i].Number, ValueSats: value}
		if winner != nil {
			hole.WinnerID = winner.ID
			result.SkinsWon[winner.ID]++
			result.WinningsSats[winner.ID] += value
			carry = 0

			var losers []string
			for j := range r.Players {
				if r.Players[j].ID != winner.ID {
					losers = append(losers, r.Players[j].ID)
				}
			}
			result.Payables = append(result.Payables, splitAmong(losers, winner.ID, value)...)
		} else {
			hole.Carried = true
			carry = value
			if cfg.CarryCapSats > 0 && carry > cfg.CarryCapSats {
				result.ForfeitedSats += carry
				carry = 0
			}
		}
		result.Holes = append(result.Holes, hole)
	}

	result.VoidedSats = carry
	return result
}
