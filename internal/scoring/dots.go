package scoring

import (
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// DotsBreakdown counts the scoring events behind a player's dot total.
type DotsBreakdown struct {
	Fairways     int `json:"fairways"`
	Greens       int `json:"greens"`
	OnePutts     int `json:"one_putts"`
	Birdies      int `json:"birdies"`
	Eagles       int `json:"eagles"`
	DoubleBogeys int `json:"double_bogeys"`
}

// DotsResult is the dots side game outcome. Payables are pairwise
// wager-per-dot differentials, lower total paying higher.
type DotsResult struct {
	Dots      map[string]int           `json:"dots"`
	Breakdown map[string]DotsBreakdown `json:"breakdown"`
	Payables  []settlement.Payable     `json:"payables,omitempty"`
}

// Summary names the dots leader.
func (r *DotsResult) Summary() string {
	leader, best := "", 0
	for id, d := range r.Dots {
		if leader == "" || d > best || (d == best && id < leader) {
			leader, best = id, d
		}
	}
	if leader == "" {
		return "no players"
	}
	return fmt.Sprintf("%s leads with %d dots", leader, best)
}

// Dots awards configurable points for fairways hit, greens in
// regulation, one-putts, birdies and eagles-or-better, and applies the
// penalty for a double bogey or worse. Fairway, green and putt events
// need per-hole stats on the player; the score-based events work off the
// card alone.
func Dots(r *golf.Round, cfg DotsConfig) *DotsResult {
	result := &DotsResult{
		Dots:      make(map[string]int, len(r.Players)),
		Breakdown: make(map[string]DotsBreakdown, len(r.Players)),
	}

	for i := range r.Players {
		p := &r.Players[i]
		var bd DotsBreakdown
		dots := 0
		for j := range p.Scores {
			if j >= len(r.Holes) {
				break
			}
			toPar := golf.ScoreToPar(p.Scores[j], r.Holes[j].Par)
			switch {
			case toPar <= -2:
				bd.Eagles++
				dots += cfg.EagleDots
			case toPar == -1:
				bd.Birdies++
				dots += cfg.BirdieDots
			case toPar >= 2:
				bd.DoubleBogeys++
				dots += cfg.DoubleBogeyDots
			}
			if j < len(p.Stats) {
				if p.Stats[j].FairwayHit {
					bd.Fairways++
					dots += cfg.FairwayDots
				}
				if p.Stats[j].GIR {
					bd.Greens++
					dots += cfg.GIRDots
				}
				if p.Stats[j].Putts == 1 {
					bd.OnePutts++
					dots += cfg.OnePuttDots
				}
			}
		}
		result.Dots[p.ID] = dots
		result.Breakdown[p.ID] = bd
	}

	if cfg.SatsPerDot > 0 {
		result.Payables = pointDiffPayables(r.Players, result.Dots, cfg.SatsPerDot)
	}
	return result
}
