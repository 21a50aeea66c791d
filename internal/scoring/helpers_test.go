package scoring_test

import "github.com/pinseekr/pinseekr-server/internal/golf"

// testRound builds a round over par-4 holes with stroke index in hole
// order, which keeps net math easy to reason about in tests.
func testRound(holes int, players ...golf.Player) *golf.Round {
	hs := make([]golf.Hole, holes)
	for i := range hs {
		hs[i] = golf.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return &golf.Round{
		ID:      "test-round",
		Holes:   hs,
		Players: players,
		Status:  golf.StatusActive,
	}
}

func repeat(score, n int) []int {
	scores := make([]int, n)
	for i := range scores {
		scores[i] = score
	}
	return scores
}
