// Package cup sequences a multi-round, two-team competition across
// game formats: four legs, point accumulation and a first-past-the-post
// win threshold. The engine is a reducer over caller-owned Cup values;
// persistence and concurrency control live with the caller.
package cup

import (
	"fmt"
	"sort"

	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
)

// The fixed template: four legs worth four points each, sixteen total,
// first team past nine takes the cup. Independent of player count.
const (
	pointsPerLeg   = 4
	TotalCupPoints = 16
	PointsToWin    = 9
)

var roundTemplate = []golf.GameMode{golf.ModeStroke, golf.ModeMatch, golf.ModeDots, golf.ModeSnake}

// NewCup validates the field, balances the two teams and lays out the
// fixed round template. A fully tagged field keeps its sides as long as
// the split is even; an untagged field is drafted 50/50 by handicap so
// the sides come out fair. Tagging only part of the field is an error
// rather than a silent re-draft.
func NewCup(name string, players []Player) (*Cup, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddPlayerCount, len(players))
	}

	assigned := 0
	for _, p := range players {
		if p.Team != "" {
			assigned++
		}
	}
	roster := make([]Player, len(players))
	copy(roster, players)

	switch {
	case assigned == 0:
		draftTeams(roster)
	case assigned != len(players):
		return nil, fmt.Errorf("%w: %d of %d players tagged", ErrPartialTeams, assigned, len(players))
	default:
		countA := 0
		for _, p := range roster {
			if p.Team == TeamA {
				countA++
			}
		}
		if countA*2 != len(roster) {
			return nil, fmt.Errorf("%w: %d on %s of %d", ErrUnevenTeams, countA, TeamA, len(roster))
		}
	}

	cup := &Cup{
		Name:             name,
		Players:          roster,
		TotalPointsToWin: PointsToWin,
	}
	for i, mode := range roundTemplate {
		cup.Rounds = append(cup.Rounds, Round{
			ID:              fmt.Sprintf("round-%d", i+1),
			GameMode:        mode,
			PointsAvailable: pointsPerLeg,
		})
	}
	return cup, nil
}

// draftTeams snake-drafts the field onto the two teams in handicap
// order (A, B, B, A, ...) so the stroke allowances balance.
func draftTeams(players []Player) {
	order := make([]*Player, len(players))
	for i := range players {
		order[i] = &players[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Handicap < order[j].Handicap
	})
	for i, p := range order {
		if i%4 == 0 || i%4 == 3 {
			p.Team = TeamA
		} else {
			p.Team = TeamB
		}
	}
}

// PlayRound scores one leg of the cup. It looks the round up by id,
// refuses unknown ids and replays, delegates to the leg's format engine,
// converts the individual result into team points and marks the round
// completed on the caller's cup value.
func PlayRound(c *Cup, roundID string, round *golf.Round) (*RoundResult, error) {
	var leg *Round
	for i := range c.Rounds {
		if c.Rounds[i].ID == roundID {
			leg = &c.Rounds[i]
			break
		}
	}
	if leg == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRound, roundID)
	}
	if leg.Completed {
		return nil, fmt.Errorf("%w: %q", ErrRoundCompleted, roundID)
	}

	// Every cup player has to appear in the round snapshot.
	byID := make(map[string]*golf.Player, len(round.Players))
	for i := range round.Players {
		byID[round.Players[i].ID] = &round.Players[i]
	}
	for _, p := range c.Players {
		if byID[p.ID] == nil {
			return nil, fmt.Errorf("%w: %q", ErrPlayerMissing, p.ID)
		}
	}

	result := &RoundResult{
		CupID:         c.ID,
		RoundID:       leg.ID,
		GameMode:      leg.GameMode,
		PointsAwarded: map[Team]int{TeamA: 0, TeamB: 0},
	}

	var err error
	switch leg.GameMode {
	case golf.ModeStroke:
		err = playStrokeLeg(c, leg, round, result)
	case golf.ModeMatch:
		err = playMatchLeg(c, leg, round, result)
	case golf.ModeDots:
		err = playDotsLeg(c, leg, round, result)
	case golf.ModeSnake:
		err = playSnakeLeg(c, leg, round, result)
	default:
		err = fmt.Errorf("cup round %q has unsupported mode %q", leg.ID, leg.GameMode)
	}
	if err != nil {
		return nil, err
	}

	leg.Completed = true
	return result, nil
}

// playStrokeLeg compares the teams' combined net strokes; the lower side
// takes the leg.
func playStrokeLeg(c *Cup, leg *Round, round *golf.Round, result *RoundResult) error {
	res := scoring.StrokePlay(round, scoring.StrokeConfig{UseNet: true})

	totals := map[Team]int{}
	fieldTotal := 0
	for _, p := range c.Players {
		net := res.Totals[p.ID].Net
		totals[p.Team] += net
		fieldTotal += net
	}

	switch {
	case totals[TeamA] < totals[TeamB]:
		result.PointsAwarded[TeamA] = leg.PointsAvailable
		result.Summary = fmt.Sprintf("%s takes stroke play, %d to %d net", TeamA, totals[TeamA], totals[TeamB])
	case totals[TeamB] < totals[TeamA]:
		result.PointsAwarded[TeamB] = leg.PointsAvailable
		result.Summary = fmt.Sprintf("%s takes stroke play, %d to %d net", TeamB, totals[TeamB], totals[TeamA])
	default:
		splitPoints(leg, result)
		result.Summary = fmt.Sprintf("stroke play halved at %d net", totals[TeamA])
	}

	// Lower net scores contribute more; rank against the field average.
	fieldAvg := float64(fieldTotal) / float64(len(c.Players))
	raw := make(map[string]float64, len(c.Players))
	for _, p := range c.Players {
		raw[p.ID] = fieldAvg - float64(res.Totals[p.ID].Net)
	}
	result.Contributions = rankContributions(c, raw)
	return nil
}

// playMatchLeg runs handicap-ordered singles between the teams and
// shares the leg's points in proportion to match points won: two per
// singles, both to the winner, one each on a halve. Working in match
// points keeps halves intact at any field size; a rounding remainder
// goes to the leading side so the full leg value always lands.
func playMatchLeg(c *Cup, leg *Round, round *golf.Round, result *RoundResult) error {
	sideA := teamRoster(c, TeamA)
	sideB := teamRoster(c, TeamB)
	matches := len(sideA)

	byID := make(map[string]*golf.Player, len(round.Players))
	for i := range round.Players {
		byID[round.Players[i].ID] = &round.Players[i]
	}

	raw := make(map[string]float64, len(c.Players))
	mpA, mpB := 0, 0
	for i := 0; i < matches; i++ {
		pa, pb := byID[sideA[i].ID], byID[sideB[i].ID]
		pairing := &golf.Round{Holes: round.Holes, Players: []golf.Player{*pa, *pb}}
		mr, err := scoring.MatchPlay(pairing, scoring.MatchConfig{UseNet: true})
		if err != nil {
			return err
		}

		switch mr.WinnerID {
		case pa.ID:
			mpA += 2
		case pb.ID:
			mpB += 2
		default:
			mpA++
			mpB++
		}
		raw[pa.ID] = float64(mr.SideA.HolesWon - mr.SideA.HolesLost)
		raw[pb.ID] = float64(mr.SideB.HolesWon - mr.SideB.HolesLost)
	}

	result.PointsAwarded[TeamA] = leg.PointsAvailable * mpA / (2 * matches)
	result.PointsAwarded[TeamB] = leg.PointsAvailable * mpB / (2 * matches)
	if rem := leg.PointsAvailable - result.PointsAwarded[TeamA] - result.PointsAwarded[TeamB]; rem > 0 {
		// Level match points split without remainder, so the leader is
		// strict here.
		if mpA > mpB {
			result.PointsAwarded[TeamA] += rem
		} else {
			result.PointsAwarded[TeamB] += rem
		}
	}

	switch {
	case mpA > mpB:
		result.Summary = fmt.Sprintf("%s wins the singles %s-%s", TeamA, halfPoints(mpA), halfPoints(mpB))
	case mpB > mpA:
		result.Summary = fmt.Sprintf("%s wins the singles %s-%s", TeamB, halfPoints(mpB), halfPoints(mpA))
	default:
		result.Summary = fmt.Sprintf("singles shared %s-%s", halfPoints(mpA), halfPoints(mpB))
	}
	result.Contributions = rankContributions(c, raw)
	return nil
}

// halfPoints renders a match-point tally (halves counted as single
// units) in the conventional singles notation, e.g. "2½".
func halfPoints(mp int) string {
	whole := mp / 2
	if mp%2 == 0 {
		return fmt.Sprintf("%d", whole)
	}
	if whole == 0 {
		return "½"
	}
	return fmt.Sprintf("%d½", whole)
}

// playDotsLeg totals each team's dots; the higher side takes the leg.
func playDotsLeg(c *Cup, leg *Round, round *golf.Round, result *RoundResult) error {
	res := scoring.Dots(round, scoring.DefaultDotsConfig())

	totals := map[Team]int{}
	raw := make(map[string]float64, len(c.Players))
	for _, p := range c.Players {
		totals[p.Team] += res.Dots[p.ID]
		raw[p.ID] = float64(res.Dots[p.ID])
	}

	switch {
	case totals[TeamA] > totals[TeamB]:
		result.PointsAwarded[TeamA] = leg.PointsAvailable
		result.Summary = fmt.Sprintf("%s takes dots, %d to %d", TeamA, totals[TeamA], totals[TeamB])
	case totals[TeamB] > totals[TeamA]:
		result.PointsAwarded[TeamB] = leg.PointsAvailable
		result.Summary = fmt.Sprintf("%s takes dots, %d to %d", TeamB, totals[TeamB], totals[TeamA])
	default:
		splitPoints(leg, result)
		result.Summary = fmt.Sprintf("dots halved at %d", totals[TeamA])
	}
	result.Contributions = rankContributions(c, raw)
	return nil
}

// playSnakeLeg hands the leg to the team whose player is NOT holding the
// snake when the round ends. No three-putts at all halves the leg.
func playSnakeLeg(c *Cup, leg *Round, round *golf.Round, result *RoundResult) error {
	res := scoring.Snake(round, scoring.SnakeConfig{})

	raw := make(map[string]float64, len(c.Players))
	for _, p := range c.Players {
		raw[p.ID] = -float64(res.ThreePutts[p.ID])
	}
	result.Contributions = rankContributions(c, raw)

	if res.HolderID == "" {
		splitPoints(leg, result)
		result.Summary = "no three-putts, snake halved"
		return nil
	}

	var holderTeam Team
	for _, p := range c.Players {
		if p.ID == res.HolderID {
			holderTeam = p.Team
			break
		}
	}
	winner := holderTeam.Opponent()
	result.PointsAwarded[winner] = leg.PointsAvailable
	result.Summary = fmt.Sprintf("%s takes the snake leg; %s held the snake", winner, res.HolderName)
	return nil
}

// splitPoints halves a leg's points between the teams. The template's
// per-leg value is even, so nothing is lost to rounding.
func splitPoints(leg *Round, result *RoundResult) {
	result.PointsAwarded[TeamA] = leg.PointsAvailable / 2
	result.PointsAwarded[TeamB] = leg.PointsAvailable / 2
}

// rankContributions converts raw per-format performance into
// comparable contribution points: each player scores the number of
// players they strictly beat in the leg. Monotonic in performance and
// scale-free across formats.
func rankContributions(c *Cup, raw map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(c.Players))
	for _, p := range c.Players {
		beat := 0
		for _, q := range c.Players {
			if raw[p.ID] > raw[q.ID] {
				beat++
			}
		}
		out[p.ID] = float64(beat)
	}
	return out
}

func teamRoster(c *Cup, team Team) []Player {
	var roster []Player
	for _, p := range c.Players {
		if p.Team == team {
			roster = append(roster, p)
		}
	}
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Handicap < roster[j].Handicap
	})
	return roster
}

// Results folds completed round results into standings. The cup is
// complete once either team reaches the points-to-win threshold; rounds
// complete one at a time, so simultaneous completion cannot happen. The
// MVP is the player with the most accumulated contribution points, and
// is always defined once at least one round is in.
func Results(c *Cup, results []RoundResult) Standings {
	standings := Standings{Points: map[Team]int{TeamA: 0, TeamB: 0}}

	totals := make(map[string]float64)
	for _, r := range results {
		for team, pts := range r.PointsAwarded {
			standings.Points[team] += pts
		}
		for id, contrib := range r.Contributions {
			totals[id] += contrib
		}
	}

	for _, team := range []Team{TeamA, TeamB} {
		if standings.Points[team] >= c.TotalPointsToWin {
			standings.IsComplete = true
			standings.Winner = team
		}
	}

	if len(results) > 0 {
		// Ties break toward roster order so the answer is deterministic.
		best := -1.0
		for _, p := range c.Players {
			if standings.MVP == "" || totals[p.ID] > best {
				standings.MVP = p.ID
				best = totals[p.ID]
			}
		}
	}
	return standings
}
