package settlement

import (
	"fmt"
	"sort"
)

// Balances collapses a list of payables into one signed net balance per
// player: positive = owed money, negative = owes money. Cycles in the
// payable graph cancel out in the reduction, so no cycle detection is
// ever needed on the raw edges.
func Balances(payables []Payable) (map[string]int64, error) {
	balances := make(map[string]int64)
	for _, p := range payables {
		if p.From == p.To {
			return nil, fmt.Errorf("%w: %q", ErrSelfPayable, p.From)
		}
		if p.Amount < 0 {
			return nil, fmt.Errorf("%w: %d from %q to %q", ErrNegativeAmount, p.Amount, p.From, p.To)
		}
		balances[p.From] -= p.Amount
		balances[p.To] += p.Amount
	}
	return balances, nil
}

// Net reduces a list of payables to the minimum set of payments that
// balances all accounts. The result has at most N-1 payments for N
// players with a nonzero balance, every amount is positive, and the
// output is deterministic for a given input.
func Net(payables []Payable) ([]Payable, error) {
	balances, err := Balances(payables)
	if err != nil {
		return nil, err
	}
	return NetBalances(balances), nil
}

// NetBalances matches the largest debtor against the largest creditor
// repeatedly until all balances are settled. It assumes a closed system
// (balances summing to zero); any imbalance left by inconsistent input
// is simply not paid to or by anyone.
func NetBalances(balances map[string]int64) []Payable {
	type account struct {
		id     string
		amount int64
	}

	var debtors, creditors []account
	for id, bal := range balances {
		switch {
		case bal < 0:
			debtors = append(debtors, account{id: id, amount: -bal})
		case bal > 0:
			creditors = append(creditors, account{id: id, amount: bal})
		}
	}

	// Largest first; ties broken by id so the output is stable.
	byAmount := func(accs []account) func(i, j int) bool {
		return func(i, j int) bool {
			if accs[i].amount != accs[j].amount {
				return accs[i].amount > accs[j].amount
			}
			return accs[i].id < accs[j].id
		}
	}
	sort.Slice(debtors, byAmount(debtors))
	sort.Slice(creditors, byAmount(creditors))

	var payments []Payable
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].amount
		if creditors[j].amount < amount {
			amount = creditors[j].amount
		}
		if amount > 0 {
			payments = append(payments, Payable{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}
		debtors[i].amount -= amount
		creditors[j].amount -= amount
		if debtors[i].amount == 0 {
			i++
		}
		if creditors[j].amount == 0 {
			j++
		}
	}
	return payments
}
