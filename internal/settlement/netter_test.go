package settlement_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalances(t *testing.T) {
	payables := []settlement.Payable{
		{From: "a", To: "b", Amount: 100},
		{From: "b", To: "c", Amount: 40},
		{From: "a", To: "c", Amount: 10},
	}

	balances, err := settlement.Balances(payables)
	require.NoError(t, err)
	assert.Equal(t, int64(-110), balances["a"])
	assert.Equal(t, int64(60), balances["b"])
	assert.Equal(t, int64(50), balances["c"])

	var total int64
	for _, bal := range balances {
		total += bal
	}
	assert.Zero(t, total, "balances must sum to zero")
}

func TestBalancesRejectsBadPayables(t *testing.T) {
	_, err := settlement.Balances([]settlement.Payable{{From: "a", To: "a", Amount: 5}})
	assert.ErrorIs(t, err, settlement.ErrSelfPayable)

	_, err = settlement.Balances([]settlement.Payable{{From: "a", To: "b", Amount: -5}})
	assert.ErrorIs(t, err, settlement.ErrNegativeAmount)
}

func TestNetCancelsCycles(t *testing.T) {
	// A perfect cycle of equal transfers settles to nothing.
	payments, err := settlement.Net([]settlement.Payable{
		{From: "a", To: "b", Amount: 50},
		{From: "b", To: "c", Amount: 50},
		{From: "c", To: "a", Amount: 50},
	})
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestNetCollapsesRedundantEdges(t *testing.T) {
	payments, err := settlement.Net([]settlement.Payable{
		{From: "a", To: "b", Amount: 30},
		{From: "a", To: "b", Amount: 20},
		{From: "b", To: "a", Amount: 10},
	})
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, settlement.Payable{From: "a", To: "b", Amount: 40}, payments[0])
}

func TestNetIsZeroSumAndMinimal(t *testing.T) {
	payables := []settlement.Payable{
		{From: "a", To: "b", Amount: 120},
		{From: "a", To: "c", Amount: 80},
		{From: "b", To: "c", Amount: 55},
		{From: "c", To: "d", Amount: 200},
		{From: "d", To: "a", Amount: 45},
		{From: "b", To: "d", Amount: 5},
	}

	before, err := settlement.Balances(payables)
	require.NoError(t, err)

	payments, err := settlement.Net(payables)
	require.NoError(t, err)

	// Re-deriving balances from the netted payments must reproduce the
	// original net position of every player.
	after, err := settlement.Balances(payments)
	require.NoError(t, err)
	for id, bal := range before {
		assert.Equal(t, bal, after[id], "player %s", id)
	}

	nonzero := 0
	for _, bal := range before {
		if bal != 0 {
			nonzero++
		}
	}
	assert.LessOrEqual(t, len(payments), nonzero-1, "at most N-1 payments")

	for _, p := range payments {
		assert.Positive(t, p.Amount)
		assert.NotEqual(t, p.From, p.To)
	}
}

func TestNetBalancesDeterministic(t *testing.T) {
	balances := map[string]int64{"a": -50, "b": -50, "c": 60, "d": 40}

	first := settlement.NetBalances(balances)
	for range 10 {
		assert.Equal(t, first, settlement.NetBalances(balances))
	}
}
