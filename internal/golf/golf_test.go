package golf_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRound(t *testing.T) {
	r := golf.NewRound("r1", golf.ModeStroke, []golf.Player{{ID: "p1", Name: "One"}})

	assert.Equal(t, golf.StatusActive, r.Status)
	require.Len(t, r.Holes, 18)
	for i, h := range r.Holes {
		assert.Equal(t, i+1, h.Number)
		assert.Equal(t, 4, h.Par)
	}
	assert.NoError(t, golf.ValidateStrokeIndexes(r.Holes))
}

func TestPlayerTotals(t *testing.T) {
	holes := golf.NewRound("r", golf.ModeStroke, nil).Holes
	p := golf.Player{ID: "p1", Handicap: 10, Scores: make([]int, 18)}
	for i := range p.Scores {
		p.Scores[i] = 4
	}

	assert.Equal(t, 18, p.HolesPlayed())
	assert.Equal(t, 72, p.Total())
	// A 10 handicap strokes on the ten lowest-indexed holes.
	assert.Equal(t, 62, p.NetTotal(holes))
}

func TestStrokesReceived(t *testing.T) {
	t.Run("single sweep", func(t *testing.T) {
		assert.Equal(t, 1, golf.StrokesReceived(10, golf.Hole{StrokeIndex: 10}, 18))
		assert.Equal(t, 0, golf.StrokesReceived(10, golf.Hole{StrokeIndex: 11}, 18))
	})

	t.Run("above eighteen", func(t *testing.T) {
		// A 20 handicap gets a stroke everywhere plus extras on index 1 and 2.
		assert.Equal(t, 2, golf.StrokesReceived(20, golf.Hole{StrokeIndex: 2}, 18))
		assert.Equal(t, 1, golf.StrokesReceived(20, golf.Hole{StrokeIndex: 3}, 18))
	})

	t.Run("scratch and unindexed", func(t *testing.T) {
		assert.Equal(t, 0, golf.StrokesReceived(0, golf.Hole{StrokeIndex: 1}, 18))
		// No stroke index on the card: only the full sweeps count.
		assert.Equal(t, 0, golf.StrokesReceived(10, golf.Hole{}, 18))
		assert.Equal(t, 1, golf.StrokesReceived(20, golf.Hole{}, 18))
	})
}

func TestValidateStrokeIndexes(t *testing.T) {
	holes := func(indexes ...int) []golf.Hole {
		hs := make([]golf.Hole, len(indexes))
		for i, idx := range indexes {
			hs[i] = golf.Hole{Number: i + 1, Par: 4, StrokeIndex: idx}
		}
		return hs
	}

	assert.NoError(t, golf.ValidateStrokeIndexes(holes(3, 1, 2)))
	assert.NoError(t, golf.ValidateStrokeIndexes(holes(0, 0, 0)))
	assert.ErrorIs(t, golf.ValidateStrokeIndexes(holes(1, 1, 2)), golf.ErrInvalidStrokeIndex)
	assert.ErrorIs(t, golf.ValidateStrokeIndexes(holes(1, 2, 4)), golf.ErrInvalidStrokeIndex)
	assert.ErrorIs(t, golf.ValidateStrokeIndexes(holes(1, 2, 0)), golf.ErrInvalidStrokeIndex)
}
