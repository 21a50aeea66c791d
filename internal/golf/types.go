package golf

// GameMode identifies the primary game format a round is played under.
type GameMode string

const (
	ModeStroke     GameMode = "stroke"
	ModeMatch      GameMode = "match"
	ModeNassau     GameMode = "nassau"
	ModeSkins      GameMode = "skins"
	ModeStableford GameMode = "stableford"
	ModeDots       GameMode = "dots"
	ModeSnake      GameMode = "snake"
)

// RoundStatus tracks the lifecycle of a round.
type RoundStatus string

const (
	StatusActive    RoundStatus = "active"
	StatusCompleted RoundStatus = "completed"
	StatusCancelled RoundStatus = "cancelled"
)

// Hole describes a single hole on the card. StrokeIndex is the hole's
// handicap ranking (1 = hardest); 0 means the card carries no stroke index.
type Hole struct {
	Number      int `json:"number"`
	Par         int `json:"par"`
	StrokeIndex int `json:"stroke_index,omitempty"`
	Yardage     int `json:"yardage,omitempty"`
}

// HoleStats carries the per-hole extras some side games score off:
// fairways, greens in regulation and putt counts.
type HoleStats struct {
	FairwayHit bool `json:"fairway_hit"`
	GIR        bool `json:"gir"`
	Putts      int  `json:"putts"`
}

// Player is one competitor in a round. Scores holds gross strokes per hole
// in play order; its length is the number of holes the player has recorded.
// Stats, when present, runs parallel to Scores.
type Player struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Handicap int         `json:"handicap"`
	Scores   []int       `json:"scores"`
	Stats    []HoleStats `json:"stats,omitempty"`
}

// Round is a single outing: an ordered card of holes, the players on it
// and the primary game mode it is scored under.
type Round struct {
	ID       string      `json:"id"`
	Name     string      `json:"name,omitempty"`
	Holes    []Hole      `json:"holes"`
	Players  []Player    `json:"players"`
	GameMode GameMode    `json:"game_mode"`
	Status   RoundStatus `json:"status"`
}
