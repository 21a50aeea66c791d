// Package expenses splits shared costs among a group and feeds the
// resulting balances through the settlement netter. It is independent of
// golf scoring; a trip's green fees, carts and beers settle the same way
// wagers do.
package expenses

import (
	"fmt"
	"math"
	"sort"

	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// percentTolerance is how far a percentage split may drift from 100
// before the result carries a warning.
const percentTolerance = 0.01

// Summary is the outcome of settling a list of expenses: per-player
// balances, the minimal payment list, and any data-quality warnings.
// Warnings never stop the computation; the caller decides whether to
// block on them.
type Summary struct {
	Balances []PlayerBalance      `json:"balances"`
	Payments []settlement.Payable `json:"payments"`
	Warnings []string             `json:"warnings,omitempty"`
}

// Settle computes each participant's owed share per expense, accumulates
// paid/owed totals per player and nets the balances into pairwise
// payments.
func Settle(expenses []Expense, convert Converter) (*Summary, error) {
	summary := &Summary{}
	paid := make(map[string]int64)
	owed := make(map[string]int64)

	for _, e := range expenses {
		if e.PayerID == "" {
			return nil, fmt.Errorf("%w: %q", ErrNoPayer, e.ID)
		}
		if len(e.ParticipantIDs) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoParticipants, e.ID)
		}

		sats := e.AmountSats
		if sats == 0 && e.Amount != 0 {
			if convert == nil {
				return nil, fmt.Errorf("%w: %q", ErrNoConverter, e.ID)
			}
			var err error
			sats, err = convert(e.Amount, e.Currency)
			if err != nil {
				return nil, fmt.Errorf("converting expense %q: %w", e.ID, err)
			}
		}

		shares, warnings, err := split(&e, sats)
		if err != nil {
			return nil, err
		}
		summary.Warnings = append(summary.Warnings, warnings...)

		paid[e.PayerID] += sats
		for id, share := range shares {
			owed[id] += share
		}
	}

	balances := make(map[string]int64)
	ids := make(map[string]bool)
	for id := range paid {
		ids[id] = true
	}
	for id := range owed {
		ids[id] = true
	}
	for id := range ids {
		net := paid[id] - owed[id]
		summary.Balances = append(summary.Balances, PlayerBalance{
			PlayerID: id,
			PaidSats: paid[id],
			OwedSats: owed[id],
			NetSats:  net,
		})
		balances[id] = net
	}
	sort.Slice(summary.Balances, func(i, j int) bool {
		return summary.Balances[i].PlayerID < summary.Balances[j].PlayerID
	})

	summary.Payments = settlement.NetBalances(balances)
	return summary, nil
}

// split computes the per-participant shares of one expense in sats.
func split(e *Expense, sats int64) (map[string]int64, []string, error) {
	shares := make(map[string]int64, len(e.ParticipantIDs))

	switch e.Mode {
	case SplitEqual, "":
		n := int64(len(e.ParticipantIDs))
		base, rem := sats/n, sats%n
		for i, id := range e.ParticipantIDs {
			share := base
			if int64(i) < rem {
				share++
			}
			shares[id] = share
		}
		return shares, nil, nil

	case SplitPercentage:
		var warnings []string
		totalPct := 0.0
		for _, id := range e.ParticipantIDs {
			pct := e.CustomSplits[id]
			totalPct += pct
			shares[id] = int64(math.Round(float64(sats) * pct / 100))
		}
		if math.Abs(totalPct-100) > percentTolerance {
			// Proceed with the literal values; the totals will not add
			// up and the caller decides whether that blocks.
			warnings = append(warnings, fmt.Sprintf(
				"expense %q: percentages sum to %.2f, not 100", e.ID, totalPct))
		}
		return shares, warnings, nil

	case SplitFixed:
		var warnings []string
		var total int64
		for _, id := range e.ParticipantIDs {
			share := int64(math.Round(e.CustomSplits[id]))
			shares[id] = share
			total += share
		}
		if total != sats {
			warnings = append(warnings, fmt.Sprintf(
				"expense %q: fixed splits total %d, expense is %d", e.ID, total, sats))
		}
		return shares, warnings, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownSplitMode, e.Mode)
	}
}
