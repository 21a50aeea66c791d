package scoring

import (
	"fmt"
	"sort"

	"github.com/pinseekr/pinseekr-server/internal/golf"
)

// StrokeTotals are a player's round totals regardless of the ranking
// direction in play.
type StrokeTotals struct {
	Gross int `json:"gross"`
	Net   int `json:"net"`
}

// StrokeStanding is one leaderboard row. Position is 1-based and shared
// on ties. Incomplete marks a player with fewer recorded holes than the
// card; they rank behind every complete player.
type StrokeStanding struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Position   int    `json:"position"`
	Score      int    `json:"score"`
	Incomplete bool   `json:"incomplete,omitempty"`
}

// StrokeResult is the stroke play leaderboard plus per-player totals.
type StrokeResult struct {
	UseNet    bool                    `json:"use_net"`
	Standings []StrokeStanding        `json:"standings"`
	Totals    map[string]StrokeTotals `json:"totals"`
	Warnings  []string                `json:"warnings,omitempty"`
}

// Summary is a one-line description of the leaderboard winner.
func (r *StrokeResult) Summary() string {
	if len(r.Standings) == 0 {
		return "no players"
	}
	top := r.Standings[0]
	kind := "gross"
	if r.UseNet {
		kind = "net"
	}
	return fmt.Sprintf("%s leads with %d (%s)", top.Name, top.Score, kind)
}

// StrokePlay ranks players by total strokes ascending, gross or net per
// config. Standard golf tie rule: equal scores share a position and the
// next distinct score resumes at the count of strictly better players
// plus one. Players who have not completed the card are ranked last and
// flagged, never silently first on a hollow total.
func StrokePlay(r *golf.Round, cfg StrokeConfig) *StrokeResult {
	result := &StrokeResult{
		UseNet: cfg.UseNet,
		Totals: make(map[string]StrokeTotals, len(r.Players)),
	}

	type entry struct {
		player *golf.Player
		score  int
		played int
	}
	var complete, incomplete []entry
	for i := range r.Players {
		p := &r.Players[i]
		result.Totals[p.ID] = StrokeTotals{Gross: p.Total(), Net: p.NetTotal(r.Holes)}
		e := entry{player: p, score: playerTotal(p, r.Holes, cfg.UseNet), played: p.HolesPlayed()}
		if e.played < len(r.Holes) {
			incomplete = append(incomplete, e)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s has recorded %d of %d holes and is ranked incomplete", p.Name, e.played, len(r.Holes)))
		} else {
			complete = append(complete, e)
		}
	}

	sort.SliceStable(complete, func(i, j int) bool {
		return complete[i].score < complete[j].score
	})
	// Incomplete players order among themselves by progress, then score.
	sort.SliceStable(incomplete, func(i, j int) bool {
		if incomplete[i].played != incomplete[j].played {
			return incomplete[i].played > incomplete[j].played
		}
		return incomplete[i].score < incomplete[j].score
	})

	for i, e := range complete {
		position := i + 1
		if i > 0 && e.score == complete[i-1].score {
			position = result.Standings[i-1].Position
		}
		result.Standings = append(result.Standings, StrokeStanding{
			PlayerID: e.player.ID,
			Name:     e.player.Name,
			Position: position,
			Score:    e.score,
		})
	}
	for i, e := range incomplete {
		result.Standings = append(result.Standings, StrokeStanding{
			PlayerID:   e.player.ID,
			Name:       e.player.Name,
			Position:   len(complete) + i + 1,
			Score:      e.score,
			Incomplete: true,
		})
	}
	return result
}
