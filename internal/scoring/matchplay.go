package scoring

import (
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// MatchSide is one player's tally of hole outcomes.
type MatchSide struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	HolesWon  int    `json:"holes_won"`
	HolesLost int    `json:"holes_lost"`
	HolesTied int    `json:"holes_tied"`
}

// MatchResult is the outcome of a two-player match. ClosedOutAfter is the
// hole number on which the match became mathematically decided, or 0 when
// it went the distance.
type MatchResult struct {
	SideA          MatchSide            `json:"side_a"`
	SideB          MatchSide            `json:"side_b"`
	WinnerID       string               `json:"winner_id,omitempty"`
	Summary        string               `json:"summary"`
	ClosedOutAfter int                  `json:"closed_out_after,omitempty"`
	Payables       []settlement.Payable `json:"payables,omitempty"`
}

// matchTally runs hole-by-hole comparison between two players over the
// hole index range [start, end), stopping early once one side's lead
// exceeds the holes remaining. Holes either player has no score for are
// not contested.
type matchTally struct {
	winsA, winsB, ties int
	decidedAt          int // hole number, 0 if played out
	remaining          int // holes left when decided
}

func playHoles(a, b *golf.Player, holes []golf.Hole, start, end int, useNet bool) matchTally {
	var t matchTally
	if end > len(a.Scores) {
		end = len(a.Scores)
	}
	if end > len(b.Scores) {
		end = len(b.Scores)
	}
	for i := start; i < end; i++ {
		sa := holeScore(a, i, holes, useNet)
		sb := holeScore(b, i, holes, useNet)
		switch {
		case sa < sb:
			t.winsA++
		case sb < sa:
			t.winsB++
		default:
			t.ties++
		}
		lead := t.winsA - t.winsB
		if lead < 0 {
			lead = -lead
		}
		remaining := end - i - 1
		if remaining > 0 && lead > remaining {
			t.decidedAt = holes[i].Number
			t.remaining = remaining
			return t
		}
	}
	return t
}

// MatchPlay scores a head-to-head match between exactly two players.
// The match closes out as soon as one side leads by more holes than
// remain; the margin is reported rather than played out.
func MatchPlay(r *golf.Round, cfg MatchConfig) (*MatchResult, error) {
	if len(r.Players) != 2 {
		return nil, fmt.Errorf("%w: got %d players", ErrTwoPlayers, len(r.Players))
	}
	a, b := &r.Players[0], &r.Players[1]
	t := playHoles(a, b, r.Holes, 0, len(r.Holes), cfg.UseNet)

	result := &MatchResult{
		SideA:          MatchSide{PlayerID: a.ID, Name: a.Name, HolesWon: t.winsA, HolesLost: t.winsB, HolesTied: t.ties},
		SideB:          MatchSide{PlayerID: b.ID, Name: b.Name, HolesWon: t.winsB, HolesLost: t.winsA, HolesTied: t.ties},
		ClosedOutAfter: t.decidedAt,
	}

	lead := t.winsA - t.winsB
	var winner, loser *golf.Player
	switch {
	case lead > 0:
		winner, loser = a, b
	case lead < 0:
		winner, loser = b, a
		lead = -lead
	}

	switch {
	case winner == nil:
		result.Summary = "All square"
	case t.decidedAt > 0 && t.remaining > 0:
		result.Summary = fmt.Sprintf("%s wins %d up with %d to play", winner.Name, lead, t.remaining)
	case lead == 1:
		result.Summary = fmt.Sprintf("%s wins 1 up", winner.Name)
	default:
		result.Summary = fmt.Sprintf("%s wins %d up", winner.Name, lead)
	}

	if winner != nil {
		result.WinnerID = winner.ID
		if cfg.StakeSats > 0 {
			result.Payables = []settlement.Payable{{From: loser.ID, To: winner.ID, Amount: cfg.StakeSats}}
		}
	}
	return result, nil
}
