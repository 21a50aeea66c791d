package scoring

import (
	"encoding/json"
	"fmt"

	"github.com/pinseekr/pinseekr-server/internal/golf"
)

// Config is the per-format wager configuration. Each format carries only
// the knobs that exist for it, so an illegal combination (a carry cap on
// Stableford, say) cannot be expressed.
type Config interface {
	Mode() golf.GameMode
}

// StrokeConfig configures stroke play.
type StrokeConfig struct {
	UseNet bool `json:"use_net"`
}

func (StrokeConfig) Mode() golf.GameMode { return golf.ModeStroke }

// MatchConfig configures a two-player match. StakeSats, when nonzero, is
// what the loser pays the winner.
type MatchConfig struct {
	UseNet    bool  `json:"use_net"`
	StakeSats int64 `json:"stake_sats"`
}

func (MatchConfig) Mode() golf.GameMode { return golf.ModeMatch }

// NassauConfig configures the three-segment Nassau bet. Each segment
// (front, back, overall) carries its own SegmentStakeSats.
type NassauConfig struct {
	UseNet           bool  `json:"use_net"`
	SegmentStakeSats int64 `json:"segment_stake_sats"`
}

func (NassauConfig) Mode() golf.GameMode { return golf.ModeNassau }

// SkinsConfig configures skins. SkinSats is the base value staked on each
// hole. CarryCapSats, when nonzero, caps the accumulated carry-over: a
// carry exceeding the cap is forfeited and the next hole restarts at the
// base value.
type SkinsConfig struct {
	UseNet       bool  `json:"use_net"`
	SkinSats     int64 `json:"skin_sats"`
	CarryCapSats int64 `json:"carry_cap_sats"`
}

func (SkinsConfig) Mode() golf.GameMode { return golf.ModeSkins }

// StablefordConfig configures the points game. A nil Table uses the
// modified Stableford default. StakePerPointSats, when nonzero, is wagered
// per point of difference between players.
type StablefordConfig struct {
	UseNet            bool        `json:"use_net"`
	StakePerPointSats int64       `json:"stake_per_point_sats"`
	Table             map[int]int `json:"table,omitempty"`
}

func (StablefordConfig) Mode() golf.GameMode { return golf.ModeStableford }

// DotsConfig configures the dots side game: how many dots each event is
// worth, the penalty for a double bogey or worse, and the wager per dot
// of difference.
type DotsConfig struct {
	SatsPerDot      int64 `json:"sats_per_dot"`
	FairwayDots     int   `json:"fairway_dots"`
	GIRDots         int   `json:"gir_dots"`
	OnePuttDots     int   `json:"one_putt_dots"`
	BirdieDots      int   `json:"birdie_dots"`
	EagleDots       int   `json:"eagle_dots"`
	DoubleBogeyDots int   `json:"double_bogey_dots"`
}

func (DotsConfig) Mode() golf.GameMode { return golf.ModeDots }

// DefaultDotsConfig is the standard dots card: one dot per achievement,
// two for an eagle, minus one for a double bogey or worse.
func DefaultDotsConfig() DotsConfig {
	return DotsConfig{
		SatsPerDot:      100,
		FairwayDots:     1,
		GIRDots:         1,
		OnePuttDots:     1,
		BirdieDots:      1,
		EagleDots:       2,
		DoubleBogeyDots: -1,
	}
}

// SnakeConfig configures the three-putt snake. The final holder pays
// PenaltySats: to RecipientID when set and DistributeToGroup is false,
// otherwise split across the rest of the group. TransferOnRepeat makes a
// holder's own three-putt count as a pass back to themselves; by default
// it only re-confirms possession.
type SnakeConfig struct {
	PenaltySats       int64  `json:"penalty_sats"`
	RecipientID       string `json:"recipient_id,omitempty"`
	DistributeToGroup bool   `json:"distribute_to_group"`
	TransferOnRepeat  bool   `json:"transfer_on_repeat"`
}

func (SnakeConfig) Mode() golf.GameMode { return golf.ModeSnake }

// DefaultConfig returns the stock configuration for a game mode.
func DefaultConfig(mode golf.GameMode) Config {
	switch mode {
	case golf.ModeMatch:
		return MatchConfig{UseNet: true, StakeSats: 1000}
	case golf.ModeNassau:
		return NassauConfig{UseNet: true, SegmentStakeSats: 1000}
	case golf.ModeSkins:
		return SkinsConfig{UseNet: true, SkinSats: 100}
	case golf.ModeStableford:
		return StablefordConfig{UseNet: true}
	case golf.ModeDots:
		return DefaultDotsConfig()
	case golf.ModeSnake:
		return SnakeConfig{PenaltySats: 1000, DistributeToGroup: true}
	default:
		return StrokeConfig{UseNet: true}
	}
}

// ParseConfig decodes a JSON wager configuration for a game mode. An
// empty blob yields the mode's default configuration.
func ParseConfig(mode golf.GameMode, blob []byte) (Config, error) {
	if len(blob) == 0 {
		return DefaultConfig(mode), nil
	}

	switch mode {
	case golf.ModeStroke:
		return parseConfig[StrokeConfig](mode, blob)
	case golf.ModeMatch:
		return parseConfig[MatchConfig](mode, blob)
	case golf.ModeNassau:
		return parseConfig[NassauConfig](mode, blob)
	case golf.ModeSkins:
		return parseConfig[SkinsConfig](mode, blob)
	case golf.ModeStableford:
		return parseConfig[StablefordConfig](mode, blob)
	case golf.ModeDots:
		return parseConfig[DotsConfig](mode, blob)
	case golf.ModeSnake:
		return parseConfig[SnakeConfig](mode, blob)
	default:
		return nil, fmt.Errorf("unknown game mode %q", mode)
	}
}

func parseConfig[T Config](mode golf.GameMode, blob []byte) (Config, error) {
	var cfg T
	if err := json.Unmarshal(blob, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", mode, err)
	}
	return cfg, nil
}
