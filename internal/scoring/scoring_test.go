package scoring_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDispatch(t *testing.T) {
	r := testRound(18,
		golf.Player{ID: "p1", Name: "One", Scores: repeat(4, 18)},
		golf.Player{ID: "p2", Name: "Two", Scores: repeat(5, 18)},
	)

	for _, mode := range []golf.GameMode{
		golf.ModeStroke, golf.ModeMatch, golf.ModeNassau, golf.ModeSkins,
		golf.ModeStableford, golf.ModeDots, golf.ModeSnake,
	} {
		t.Run(string(mode), func(t *testing.T) {
			res, err := scoring.Score(r, scoring.DefaultConfig(mode))
			require.NoError(t, err)
			assert.Equal(t, mode, res.Mode)
			assert.NotEmpty(t, res.Summary)
			assert.NotNil(t, res.Detail)
		})
	}
}

func TestScoreDeterministic(t *testing.T) {
	r := testRound(18,
		golf.Player{ID: "p1", Name: "One", Handicap: 7, Scores: repeat(4, 18)},
		golf.Player{ID: "p2", Name: "Two", Handicap: 12, Scores: repeat(5, 18)},
	)

	first, err := scoring.Score(r, scoring.DefaultConfig(golf.ModeNassau))
	require.NoError(t, err)
	for range 5 {
		again, err := scoring.Score(r, scoring.DefaultConfig(golf.ModeNassau))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
