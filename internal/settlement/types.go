package settlement

import "errors"

var (
	ErrSelfPayable    = errors.New("payable from and to must differ")
	ErrNegativeAmount = errors.New("payable amount must not be negative")
)

// Payable is a single directed monetary obligation in sats. A negative
// relationship is always expressed as the reverse Payable, never as a
// negative amount.
type Payable struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}
