package expenses

import "errors"

var (
	ErrNoParticipants   = errors.New("expense has no participants")
	ErrNoPayer          = errors.New("expense has no payer")
	ErrUnknownSplitMode = errors.New("unknown split mode")
	ErrNoConverter      = errors.New("expense amount needs a currency converter")
)

// SplitMode selects how an expense is divided among its participants.
type SplitMode string

const (
	SplitEqual      SplitMode = "equal"
	SplitPercentage SplitMode = "percentage"
	SplitFixed      SplitMode = "fixed"
)

// Expense is one shared cost. AmountSats is the settled value in sats;
// when zero it is derived from Amount/Currency through the converter.
// CustomSplits carries per-player percentages (percentage mode) or sat
// amounts (fixed mode).
type Expense struct {
	ID             string             `json:"id"`
	Category       string             `json:"category,omitempty"`
	Description    string             `json:"description,omitempty"`
	Amount         float64            `json:"amount"`
	Currency       string             `json:"currency"`
	AmountSats     int64              `json:"amount_sats"`
	PayerID        string             `json:"payer_id"`
	ParticipantIDs []string           `json:"participant_ids"`
	Mode           SplitMode          `json:"split_mode"`
	CustomSplits   map[string]float64 `json:"custom_splits,omitempty"`
}

// Converter turns a fiat amount into sats. The exchange-rate source
// lives outside this package; engines only ever see the function.
type Converter func(amount float64, currency string) (int64, error)

// PlayerBalance is a player's position across all expenses.
type PlayerBalance struct {
	PlayerID string `json:"player_id"`
	PaidSats int64  `json:"paid_sats"`
	OwedSats int64  `json:"owed_sats"`
	NetSats  int64  `json:"net_sats"`
}

// StaticConverter builds a Converter from a fixed sats-per-unit rate
// table.
func StaticConverter(rates map[string]float64) Converter {
	return func(amount float64, currency string) (int64, error) {
		rate, ok := rates[currency]
		if !ok {
			return 0, errors.New("no exchange rate for " + currency)
		}
		return int64(amount*rate + 0.5), nil
	}
}
