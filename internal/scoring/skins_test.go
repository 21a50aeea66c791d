package scoring_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkinsCarryOver(t *testing.T) {
	// Holes 1-2 tie, hole 3 goes to p1 outright: three holes' worth of
	// skin value lands on the hole 3 winner.
	r := testRound(3,
		golf.Player{ID: "p1", Name: "One", Scores: []int{4, 4, 3}},
		golf.Player{ID: "p2", Name: "Two", Scores: []int{4, 4, 4}},
		golf.Player{ID: "p3", Name: "Three", Scores: []int{4, 4, 4}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{SkinSats: 100})

	require.Len(t, res.Holes, 3)
	assert.True(t, res.Holes[0].Carried)
	assert.True(t, res.Holes[1].Carried)
	assert.Equal(t, "p1", res.Holes[2].WinnerID)
	assert.Equal(t, int64(300), res.Holes[2].ValueSats)
	assert.Equal(t, int64(300), res.WinningsSats["p1"])
	assert.Equal(t, 1, res.SkinsWon["p1"])
	assert.Zero(t, res.VoidedSats)
}

func TestSkinsUnclaimedCarryIsVoided(t *testing.T) {
	// Every hole ties: nothing is ever paid and the carry dies with the
	// round. Deliberate rule, not a leak.
	r := testRound(3,
		golf.Player{ID: "p1", Scores: []int{4, 4, 4}},
		golf.Player{ID: "p2", Scores: []int{4, 4, 4}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{SkinSats: 100})

	assert.Empty(t, res.Payables)
	assert.Empty(t, res.WinningsSats)
	assert.Equal(t, int64(300), res.VoidedSats)
}

func TestSkinsCarryCapForfeits(t *testing.T) {
	// The cap trips once the accumulated carry exceeds it: the carry is
	// forfeited and the next hole restarts at base value.
	r := testRound(4,
		golf.Player{ID: "p1", Scores: []int{4, 4, 4, 3}},
		golf.Player{ID: "p2", Scores: []int{4, 4, 4, 4}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{SkinSats: 100, CarryCapSats: 250})

	// Holes 1-2 build a 200 carry; hole 3's tie pushes it to 300, over
	// the 250 cap, so it forfeits. Hole 4 is won at base value.
	assert.Equal(t, int64(300), res.ForfeitedSats)
	assert.Equal(t, int64(100), res.WinningsSats["p1"])
	assert.Zero(t, res.VoidedSats)
}

func TestSkinsZeroSum(t *testing.T) {
	r := testRound(4,
		golf.Player{ID: "p1", Scores: []int{3, 4, 4, 4}},
		golf.Player{ID: "p2", Scores: []int{4, 4, 3, 5}},
		golf.Player{ID: "p3", Scores: []int{4, 4, 4, 4}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{SkinSats: 100})

	var paid int64
	for _, p := range res.Payables {
		assert.Positive(t, p.Amount)
		paid += p.Amount
	}
	var won int64
	for _, w := range res.WinningsSats {
		won += w
	}
	assert.Equal(t, won, paid, "total paid must equal total won")

	// Value conservation: winnings plus voided and forfeited carry
	// account for every staked sat.
	staked := int64(len(res.Holes)) * 100
	assert.Equal(t, staked, won+res.VoidedSats+res.ForfeitedSats)
}

func TestSkinsNet(t *testing.T) {
	// On net, the stroke p2 gets at the hardest hole beats p1's par.
	r := testRound(2,
		golf.Player{ID: "p1", Handicap: 0, Scores: []int{4, 4}},
		golf.Player{ID: "p2", Handicap: 1, Scores: []int{4, 5}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{UseNet: true, SkinSats: 100})

	assert.Equal(t, "p2", res.Holes[0].WinnerID)
	assert.Equal(t, "p1", res.Holes[1].WinnerID)
}

func TestSkinsRemainderDistribution(t *testing.T) {
	// A 100 skin against two losers splits 50/50; a 101 value cannot be
	// split evenly and the earlier player covers the extra sat.
	r := testRound(1,
		golf.Player{ID: "p1", Scores: []int{3}},
		golf.Player{ID: "p2", Scores: []int{4}},
		golf.Player{ID: "p3", Scores: []int{4}},
	)

	res := scoring.Skins(r, scoring.SkinsConfig{SkinSats: 101})

	require.Len(t, res.Payables, 2)
	assert.Equal(t, int64(51), res.Payables[0].Amount)
	assert.Equal(t, "p2", res.Payables[0].From)
	assert.Equal(t, int64(50), res.Payables[1].Amount)
	assert.Equal(t, "p3", res.Payables[1].From)
}
