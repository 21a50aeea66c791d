package scoring

import (
	"fmt"
	"strings"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// NassauSegment is one of the three sub-bets. An empty WinnerID is a push
// and pays nothing.
type NassauSegment struct {
	Name     string `json:"name"`
	WinnerID string `json:"winner_id,omitempty"`
	WonBy    int    `json:"won_by,omitempty"`
}

// NassauResult resolves the front nine, back nine and overall eighteen as
// three independent match-play bets, each for the configured segment
// stake.
type NassauResult struct {
	Front    NassauSegment        `json:"front"`
	Back     NassauSegment        `json:"back"`
	Overall  NassauSegment        `json:"overall"`
	Payables []settlement.Payable `json:"payables,omitempty"`
}

// Summary describes the three segments in one line.
func (r *NassauResult) Summary() string {
	parts := make([]string, 0, 3)
	for _, seg := range []NassauSegment{r.Front, r.Back, r.Overall} {
		if seg.WinnerID == "" {
			parts = append(parts, seg.Name+" pushed")
		} else {
			parts = append(parts, fmt.Sprintf("%s won by %d", seg.Name, seg.WonBy))
		}
	}
	return strings.Join(parts, ", ")
}

// Nassau scores the classic three-way bet between two players. Segments
// are decided by holes won within the segment; a segment either player
// has no holes recorded in simply pushes.
func Nassau(r *golf.Round, cfg NassauConfig) (*NassauResult, error) {
	if len(r.Players) != 2 {
		return nil, fmt.Errorf("%w: got %d players", ErrTwoPlayers, len(r.Players))
	}
	a, b := &r.Players[0], &r.Players[1]

	half := len(r.Holes) / 2
	result := &NassauResult{
		Front:   nassauSegment("front nine", a, b, r.Holes, 0, half, cfg.UseNet),
		Back:    nassauSegment("back nine", a, b, r.Holes, half, len(r.Holes), cfg.UseNet),
		Overall: nassauSegment("overall", a, b, r.Holes, 0, len(r.Holes), cfg.UseNet),
	}

	for _, seg := range []NassauSegment{result.Front, result.Back, result.Overall} {
		if seg.WinnerID == "" || cfg.SegmentStakeSats <= 0 {
			continue
		}
		loser := a.ID
		if seg.WinnerID == a.ID {
			loser = b.ID
		}
		result.Payables = append(result.Payables, settlement.Payable{
			From:   loser,
			To:     seg.WinnerID,
			Amount: cfg.SegmentStakeSats,
		})
	}
	return result, nil
}

func nassauSegment(name string, a, b *golf.Player, holes []golf.Hole, start, end int, useNet bool) NassauSegment {
	seg := NassauSegment{Name: name}
	// Early close-out inside a segment decides the same winner the full
	// count would, so the tally can run the segment out.
	t := playHoles(a, b, holes, start, end, useNet)
	switch {
	case t.winsA > t.winsB:
		seg.WinnerID = a.ID
		seg.WonBy = t.winsA - t.winsB
	case t.winsB > t.winsA:
		seg.WinnerID = b.ID
		seg.WonBy = t.winsB - t.winsA
	}
	return seg
}
