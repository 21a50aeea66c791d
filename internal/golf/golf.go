package golf

import (
	"errors"
	"fmt"
)

// DefaultHoles is the number of holes a new round starts with.
const DefaultHoles = 18

// MaxHandicap is the highest stroke allowance a player can carry.
const MaxHandicap = 54

var ErrInvalidStrokeIndex = errors.New("stroke indexes must be a permutation of 1..N")

// NewRound creates an active round with the default 18 par-4 card.
func NewRound(id string, mode GameMode, players []Player) *Round {
	holes := make([]Hole, DefaultHoles)
	for i := range holes {
		holes[i] = Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return &Round{
		ID:       id,
		Holes:    holes,
		Players:  players,
		GameMode: mode,
		Status:   StatusActive,
	}
}

// HolesPlayed reports how many holes the player has recorded a score for.
func (p *Player) HolesPlayed() int {
	return len(p.Scores)
}

// Total is the player's cumulative gross strokes.
func (p *Player) Total() int {
	total := 0
	for _, s := range p.Scores {
		total += s
	}
	return total
}

// NetTotal is the gross total minus the handicap strokes the player
// receives over the holes actually played.
func (p *Player) NetTotal(holes []Hole) int {
	net := 0
	for i := range p.Scores {
		net += p.NetScore(i, holes)
	}
	return net
}

// NetScore is the player's handicap-adjusted score on hole index i.
func (p *Player) NetScore(i int, holes []Hole) int {
	if i >= len(p.Scores) {
		return 0
	}
	allowance := 0
	if i < len(holes) {
		allowance = StrokesReceived(p.Handicap, holes[i], len(holes))
	}
	return p.Scores[i] - allowance
}

// StrokesReceived is the number of handicap strokes a player gets on a
// hole: one stroke per full sweep of the card, plus one more on the
// lowest-indexed holes for the remainder. A hole without a stroke index
// only receives the full-sweep strokes.
func StrokesReceived(handicap int, hole Hole, totalHoles int) int {
	if handicap <= 0 || totalHoles <= 0 {
		return 0
	}
	strokes := handicap / totalHoles
	if hole.StrokeIndex > 0 && hole.StrokeIndex <= handicap%totalHoles {
		strokes++
	}
	return strokes
}

// ScoreToPar is the signed difference between a score and par
// (negative = under par).
func ScoreToPar(score, par int) int {
	return score - par
}

// ValidateStrokeIndexes checks that the card's stroke indexes, when
// present, form a permutation of 1..N. A card with no indexes at all is
// valid.
func ValidateStrokeIndexes(holes []Hole) error {
	n := len(holes)
	seen := make(map[int]bool, n)
	indexed := 0
	for _, h := range holes {
		if h.StrokeIndex == 0 {
			continue
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > n {
			return fmt.Errorf("%w: hole %d has index %d", ErrInvalidStrokeIndex, h.Number, h.StrokeIndex)
		}
		if seen[h.StrokeIndex] {
			return fmt.Errorf("%w: index %d repeated", ErrInvalidStrokeIndex, h.StrokeIndex)
		}
		seen[h.StrokeIndex] = true
		indexed++
	}
	if indexed != 0 && indexed != n {
		return fmt.Errorf("%w: %d of %d holes indexed", ErrInvalidStrokeIndex, indexed, n)
	}
	return nil
}
