package scoring_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNassauRequiresTwoSides(t *testing.T) {
	r := testRound(18, golf.Player{ID: "p1", Scores: repeat(4, 18)})
	_, err := scoring.Nassau(r, scoring.NassauConfig{})
	assert.ErrorIs(t, err, scoring.ErrTwoPlayers)
}

func TestNassauSegments(t *testing.T) {
	// Alice takes the front by two, Bob the back by one; Alice holds the
	// overall by one. Three independent bets, three payments.
	aliceScores := append([]int{3, 3}, repeat(4, 16)...) // wins holes 1-2
	bobScores := append(repeat(4, 9), append([]int{3}, repeat(4, 8)...)...)
	alice := golf.Player{ID: "alice", Name: "Alice", Scores: aliceScores}
	bob := golf.Player{ID: "bob", Name: "Bob", Scores: bobScores}
	r := testRound(18, alice, bob)

	res, err := scoring.Nassau(r, scoring.NassauConfig{SegmentStakeSats: 300})
	require.NoError(t, err)

	assert.Equal(t, "alice", res.Front.WinnerID)
	assert.Equal(t, 2, res.Front.WonBy)
	assert.Equal(t, "bob", res.Back.WinnerID)
	assert.Equal(t, 1, res.Back.WonBy)
	assert.Equal(t, "alice", res.Overall.WinnerID)
	assert.Equal(t, 1, res.Overall.WonBy)

	assert.ElementsMatch(t, []settlement.Payable{
		{From: "bob", To: "alice", Amount: 300},
		{From: "alice", To: "bob", Amount: 300},
		{From: "bob", To: "alice", Amount: 300},
	}, res.Payables)
}

func TestNassauPushPaysNothing(t *testing.T) {
	r := testRound(18,
		golf.Player{ID: "p1", Name: "One", Scores: repeat(4, 18)},
		golf.Player{ID: "p2", Name: "Two", Scores: repeat(4, 18)},
	)

	res, err := scoring.Nassau(r, scoring.NassauConfig{SegmentStakeSats: 300})
	require.NoError(t, err)

	assert.Empty(t, res.Front.WinnerID)
	assert.Empty(t, res.Back.WinnerID)
	assert.Empty(t, res.Overall.WinnerID)
	assert.Empty(t, res.Payables)
}

func TestNassauSplitSweep(t *testing.T) {
	// Winning front and overall while halving the back pays two stakes.
	alice := golf.Player{ID: "alice", Name: "Alice", Scores: append([]int{3}, repeat(4, 17)...)}
	bob := golf.Player{ID: "bob", Name: "Bob", Scores: repeat(4, 18)}
	r := testRound(18, alice, bob)

	res, err := scoring.Nassau(r, scoring.NassauConfig{SegmentStakeSats: 100})
	require.NoError(t, err)

	assert.Equal(t, "alice", res.Front.WinnerID)
	assert.Empty(t, res.Back.WinnerID)
	assert.Equal(t, "alice", res.Overall.WinnerID)
	require.Len(t, res.Payables, 2)

	payments, err := settlement.Net(res.Payables)
	require.NoError(t, err)
	assert.Equal(t, []settlement.Payable{{From: "bob", To: "alice", Amount: 200}}, payments)
}
