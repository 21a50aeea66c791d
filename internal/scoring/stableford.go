package scoring

import (
	"fmt"
	"sort"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// defaultStablefordTable maps score-to-par to points in the modified
// Stableford variant: albatross 5 down to double bogey or worse 0.
var defaultStablefordTable = map[int]int{
	-3: 5,
	-2: 4,
	-1: 3,
	0:  2,
	1:  1,
	2:  0,
}

// StablefordStanding is one leaderboard row; higher points rank first.
type StablefordStanding struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Points   int    `json:"points"`
}

// StablefordResult is the points leaderboard. Payables, when a stake per
// point is configured, are pairwise point-differential wagers.
type StablefordResult struct {
	Points    map[string]int       `json:"points"`
	Standings []StablefordStanding `json:"standings"`
	Payables  []settlement.Payable `json:"payables,omitempty"`
}

// Summary names the points leader.
func (r *StablefordResult) Summary() string {
	if len(r.Standings) == 0 {
		return "no players"
	}
	top := r.Standings[0]
	return fmt.Sprintf("%s leads with %d points", top.Name, top.Points)
}

// stablefordPoints looks up points for a score-to-par, clamping beyond
// the table's ends.
func stablefordPoints(table map[int]int, toPar int) int {
	if toPar < -3 {
		toPar = -3
	}
	if toPar > 2 {
		toPar = 2
	}
	return table[toPar]
}

// Stableford scores each hole's score-to-par (net when configured) into
// points and ranks players by total points descending, the opposite
// direction from stroke play.
func Stableford(r *golf.Round, cfg StablefordConfig) *StablefordResult {
	table := cfg.Table
	if table == nil {
		table = defaultStablefordTable
	}

	result := &StablefordResult{Points: make(map[string]int, len(r.Players))}
	for i := range r.Players {
		p := &r.Players[i]
		points := 0
		for j := range p.Scores {
			if j >= len(r.Holes) {
				break
			}
			toPar := golf.ScoreToPar(holeScore(p, j, r.Holes, cfg.UseNet), r.Holes[j].Par)
			points += stablefordPoints(table, toPar)
		}
		result.Points[p.ID] = points
		result.Standings = append(result.Standings, StablefordStanding{
			PlayerID: p.ID,
			Name:     p.Name,
			Points:   points,
		})
	}

	sort.SliceStable(result.Standings, func(i, j int) bool {
		return result.Standings[i].Points > result.Standings[j].Points
	})
	for i := range result.Standings {
		if i > 0 && result.Standings[i].Points == result.Standings[i-1].Points {
			result.Standings[i].Position = result.Standings[i-1].Position
			continue
		}
		result.Standings[i].Position = i + 1
	}

	if cfg.StakePerPointSats > 0 {
		result.Payables = pointDiffPayables(r.Players, result.Points, cfg.StakePerPointSats)
	}
	return result
}

// pointDiffPayables wagers stake sats per point of difference between
// every pair, lower scorer paying higher. The netter collapses the
// resulting edge list.
func pointDiffPayables(players []golf.Player, points map[string]int, stake int64) []settlement.Payable {
	var payables []settlement.Payable
	for i := range players {
		for j := i + 1; j < len(players); j++ {
			a, b := players[i].ID, players[j].ID
			diff := points[a] - points[b]
			switch {
			case diff > 0:
				payables = append(payables, settlement.Payable{From: b, To: a, Amount: int64(diff) * stake})
			case diff < 0:
				payables = append(payables, settlement.Payable{From: a, To: b, Amount: int64(-diff) * stake})
			}
		}
	}
	return payables
}
