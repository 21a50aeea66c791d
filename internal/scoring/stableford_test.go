package scoring_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStablefordDefaultTable(t *testing.T) {
	// One of each outcome on par 4s: albatross 1, eagle 2, birdie 3,
	// par 4, bogey 5, double 6, triple 7.
	r := testRound(7, golf.Player{ID: "p1", Name: "One", Scores: []int{1, 2, 3, 4, 5, 6, 7}})

	res := scoring.Stableford(r, scoring.StablefordConfig{})

	// 5 + 4 + 3 + 2 + 1 + 0 + 0
	assert.Equal(t, 15, res.Points["p1"])
}

func TestStablefordLeaderboardDescending(t *testing.T) {
	r := testRound(3,
		golf.Player{ID: "steady", Name: "Steady", Scores: []int{4, 4, 4}},
		golf.Player{ID: "streaky", Name: "Streaky", Scores: []int{3, 3, 7}},
	)

	res := scoring.Stableford(r, scoring.StablefordConfig{})

	// Higher points rank first, the opposite direction from stroke play.
	assert.Equal(t, 6, res.Points["steady"])
	assert.Equal(t, 6, res.Points["streaky"])
	assert.Equal(t, 1, res.Standings[0].Position)
	assert.Equal(t, 1, res.Standings[1].Position)
}

func TestStablefordNetUsesAllowance(t *testing.T) {
	r := testRound(2,
		golf.Player{ID: "p1", Handicap: 2, Scores: []int{5, 5}},
	)

	res := scoring.Stableford(r, scoring.StablefordConfig{UseNet: true})

	// Both bogeys play to par with a stroke on each hole.
	assert.Equal(t, 4, res.Points["p1"])
}

func TestStablefordPointWager(t *testing.T) {
	r := testRound(2,
		golf.Player{ID: "p1", Name: "One", Scores: []int{3, 4}},
		golf.Player{ID: "p2", Name: "Two", Scores: []int{4, 4}},
	)

	res := scoring.Stableford(r, scoring.StablefordConfig{StakePerPointSats: 50})

	// 5 points against 4: one point of difference at 50 sats.
	require.Len(t, res.Payables, 1)
	assert.Equal(t, settlement.Payable{From: "p2", To: "p1", Amount: 50}, res.Payables[0])
}

func TestStablefordCustomTable(t *testing.T) {
	// A flat all-or-nothing card: birdie or better pays one point.
	table := map[int]int{-3: 1, -2: 1, -1: 1, 0: 0, 1: 0, 2: 0}
	r := testRound(3, golf.Player{ID: "p1", Scores: []int{3, 4, 2}})

	res := scoring.Stableford(r, scoring.StablefordConfig{Table: table})

	assert.Equal(t, 2, res.Points["p1"])
}
