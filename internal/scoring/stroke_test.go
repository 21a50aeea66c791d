package scoring_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrokePlayTieRule(t *testing.T) {
	// Two players on 70 share first; the 72 takes third, not second.
	r := testRound(18,
		golf.Player{ID: "p1", Name: "One", Scores: append(repeat(4, 16), 3, 3)},
		golf.Player{ID: "p2", Name: "Two", Scores: append(repeat(4, 16), 3, 3)},
		golf.Player{ID: "p3", Name: "Three", Scores: repeat(4, 18)},
	)

	res := scoring.StrokePlay(r, scoring.StrokeConfig{})

	require.Len(t, res.Standings, 3)
	assert.Equal(t, 1, res.Standings[0].Position)
	assert.Equal(t, 70, res.Standings[0].Score)
	assert.Equal(t, 1, res.Standings[1].Position)
	assert.Equal(t, 70, res.Standings[1].Score)
	assert.Equal(t, 3, res.Standings[2].Position)
	assert.Equal(t, 72, res.Standings[2].Score)
}

func TestStrokePlayNet(t *testing.T) {
	r := testRound(18,
		golf.Player{ID: "scratch", Name: "Scratch", Handicap: 0, Scores: repeat(4, 18)},
		golf.Player{ID: "chopper", Name: "Chopper", Handicap: 18, Scores: repeat(5, 18)},
	)

	res := scoring.StrokePlay(r, scoring.StrokeConfig{UseNet: true})

	// Gross 90 nets to 72 with a stroke per hole; the two tie on net.
	assert.Equal(t, scoring.StrokeTotals{Gross: 90, Net: 72}, res.Totals["chopper"])
	assert.Equal(t, scoring.StrokeTotals{Gross: 72, Net: 72}, res.Totals["scratch"])
	assert.Equal(t, 1, res.Standings[0].Position)
	assert.Equal(t, 1, res.Standings[1].Position)
}

func TestStrokePlayIncompletePlayerRanksLast(t *testing.T) {
	r := testRound(18,
		golf.Player{ID: "done", Name: "Done", Scores: repeat(5, 18)},
		golf.Player{ID: "walkoff", Name: "Walkoff", Scores: repeat(4, 3)},
		golf.Player{ID: "noshow", Name: "Noshow"},
	)

	res := scoring.StrokePlay(r, scoring.StrokeConfig{})

	require.Len(t, res.Standings, 3)
	assert.Equal(t, "done", res.Standings[0].PlayerID)
	assert.False(t, res.Standings[0].Incomplete)

	// Partial and zero-hole players sit behind every complete player
	// even though their raw totals are lower.
	assert.Equal(t, "walkoff", res.Standings[1].PlayerID)
	assert.True(t, res.Standings[1].Incomplete)
	assert.Equal(t, 2, res.Standings[1].Position)
	assert.Equal(t, "noshow", res.Standings[2].PlayerID)
	assert.True(t, res.Standings[2].Incomplete)
	assert.Equal(t, 3, res.Standings[2].Position)

	assert.Len(t, res.Warnings, 2)
}
