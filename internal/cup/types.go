package cup

import (
	"errors"

	"github.com/pinseekr/pinseekr-server/internal/golf"
)

var (
	ErrOddPlayerCount = errors.New("cup needs an even number of players")
	ErrNoPlayers      = errors.New("cup needs at least two players")
	ErrUnevenTeams    = errors.New("cup teams must be the same size")
	ErrPartialTeams   = errors.New("cup players must be all tagged with a team or all untagged")
	ErrUnknownRound   = errors.New("unknown cup round")
	ErrRoundCompleted = errors.New("cup round already completed")
	ErrPlayerMissing  = errors.New("cup player missing from round")
)

// Team names the two sides of a cup.
type Team string

const (
	TeamA Team = "Team A"
	TeamB Team = "Team B"
)

// Opponent is the other side.
func (t Team) Opponent() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Player is a cup competitor with a team tag.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
	Team     Team   `json:"team,omitempty"`
}

// Round is one scheduled leg of the cup, bound to a game mode and worth
// a fixed number of points. Completed is permanent once set; replaying a
// completed round is an error.
type Round struct {
	ID              string        `json:"id"`
	GameMode        golf.GameMode `json:"game_mode"`
	PointsAvailable int           `json:"points_available"`
	Completed       bool          `json:"completed"`
}

// Cup is the whole tournament. The engine never holds one between calls;
// callers own the value and pass it in whole.
type Cup struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Players          []Player `json:"players"`
	Rounds           []Round  `json:"rounds"`
	TotalPointsToWin int      `json:"total_points_to_win"`
}

// RoundResult is the team outcome of one completed leg. Contributions
// rank each player's individual performance within the round and feed
// the MVP calculation.
type RoundResult struct {
	CupID         string             `json:"cup_id"`
	RoundID       string             `json:"round_id"`
	GameMode      golf.GameMode      `json:"game_mode"`
	PointsAwarded map[Team]int       `json:"points_awarded"`
	Summary       string             `json:"summary"`
	Contributions map[string]float64 `json:"contributions"`
}

// Standings is the running state of the cup across completed rounds.
// Winner and MVP are empty until defined.
type Standings struct {
	Points     map[Team]int `json:"points"`
	IsComplete bool         `json:"is_complete"`
	Winner     Team         `json:"winner,omitempty"`
	MVP        string       `json:"mvp,omitempty"`
}
