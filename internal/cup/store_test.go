package cup_test

import (
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a temporary in-memory SQLite database for testing.
func setupTestStore(t *testing.T) (cup.CupService, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := cup.NewStore(db)

	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return store, teardown
}

func TestStoreCreateAndGetCup(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	created, err := store.CreateCup("Pinseekr Cup", fixtureCupPlayers())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.GetCup(created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Players, got.Players)
	assert.Equal(t, created.Rounds, got.Rounds)
	assert.Equal(t, cup.PointsToWin, got.TotalPointsToWin)
}

func TestStoreCreateCupRejectsBadField(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.CreateCup("odd", fixtureCupPlayers()[:3])
	assert.ErrorIs(t, err, cup.ErrOddPlayerCount)
}

func TestStoreGetCupNotFound(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.GetCup("nope")
	assert.Error(t, err)
}

func TestStoreSaveCupPersistsRoundState(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	created, err := store.CreateCup("state", fixtureCupPlayers())
	require.NoError(t, err)

	res, err := cup.PlayRound(created, "round-1", fixtureRound())
	require.NoError(t, err)
	require.NoError(t, store.SaveCup(created))
	require.NoError(t, store.SaveRoundResult(res))

	got, err := store.GetCup(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Rounds[0].Completed)
	assert.False(t, got.Rounds[1].Completed)

	results, err := store.GetRoundResults(created.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, res.Summary, results[0].Summary)
	assert.Equal(t, res.PointsAwarded, results[0].PointsAwarded)
	assert.Equal(t, res.Contributions, results[0].Contributions)
}

func TestStoreSaveRoundResultRejectsReplay(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	created, err := store.CreateCup("replay", fixtureCupPlayers())
	require.NoError(t, err)

	res, err := cup.PlayRound(created, "round-1", fixtureRound())
	require.NoError(t, err)
	require.NoError(t, store.SaveRoundResult(res))

	// The primary key on (cup_id, round_id) makes a duplicate save fail
	// even when the in-memory guard was bypassed.
	err = store.SaveRoundResult(res)
	assert.Error(t, err)
}

func TestStoreListCups(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	_, err := store.CreateCup("first", fixtureCupPlayers())
	require.NoError(t, err)
	_, err = store.CreateCup("second", fixtureCupPlayers())
	require.NoError(t, err)

	cups, err := store.ListCups()
	require.NoError(t, err)
	assert.Len(t, cups, 2)
}

func TestStoreClear(t *testing.T) {
	store, teardown := setupTestStore(t)
	defer teardown()

	created, err := store.CreateCup("gone", fixtureCupPlayers())
	require.NoError(t, err)

	store.Clear()

	_, err = store.GetCup(created.ID)
	assert.Error(t, err)
}
