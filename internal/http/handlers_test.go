package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pinseekr/pinseekr-server/internal/config"
	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/database"
	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/metrics"
	"github.com/pinseekr/pinseekr-server/internal/notifier"
	"github.com/pinseekr/pinseekr-server/internal/processor"
	"github.com/pinseekr/pinseekr-server/internal/pubsub"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, notifier notifier.Notifier) (*Server, func()) {
	t.Helper()

	// For handlers that use the store, we need a real db connection for now.
	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	roundStore := rounds.New(db)
	cupStore := cup.NewStore(db)
	cfg := config.Config{}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	metricsStore := metrics.New(db)
	ps := pubsub.NewMock("TEST")
	proc := processor.New(roundStore, notifier, metricsSvc, ps)
	server := NewServer(roundStore, cupStore, metricsSvc, metricsHandler, metricsStore, cfg, notifier, proc, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// completedMatchRound is a two hole match: Alice takes both holes off Bob.
func completedMatchRound(id string) *golf.Round {
	return &golf.Round{
		ID:       id,
		Name:     "Saturday game",
		GameMode: golf.ModeMatch,
		Status:   golf.StatusCompleted,
		Holes:    []golf.Hole{{Number: 1, Par: 4}, {Number: 2, Par: 4}},
		Players: []golf.Player{
			{ID: "a", Name: "Alice", Scores: []int{4, 4}},
			{ID: "b", Name: "Bob", Scores: []int{5, 5}},
		},
	}
}

func postJSON(t *testing.T, server *Server, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", target, bytes.NewReader(body))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestSubmitAndListRounds(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/rounds", map[string]any{"round": completedMatchRound("match-1")})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	req, err := http.NewRequest("GET", "/rounds", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "match-1")
	assert.Contains(t, rr.Body.String(), string(rounds.StatusNew))
}

func TestSubmitRoundRejectsBadConfig(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/rounds", map[string]any{
		"round":  completedMatchRound("match-1"),
		"config": map[string]any{"stake_sats": "not a number"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitRoundRejectsBadCard(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	overLimit := completedMatchRound("match-1")
	overLimit.Players[0].Handicap = golf.MaxHandicap + 1
	rr := postJSON(t, server, "/rounds", map[string]any{"round": overLimit})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "handicap")

	badIndexes := completedMatchRound("match-1")
	badIndexes.Holes[0].StrokeIndex = 1
	badIndexes.Holes[1].StrokeIndex = 1
	rr = postJSON(t, server, "/rounds", map[string]any{"round": badIndexes})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Nothing from the rejected submissions reaches the store.
	req, err := http.NewRequest("GET", "/rounds", nil)
	require.NoError(t, err)
	rr2 := httptest.NewRecorder()
	server.Router.ServeHTTP(rr2, req)
	assert.NotContains(t, rr2.Body.String(), "match-1")
}

func TestScoreRoundHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/rounds/score", map[string]any{"round": completedMatchRound("preview")})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Result struct {
			Summary string `json:"summary"`
		} `json:"result"`
		Payments []settlement.Payable `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Result.Summary, "Alice wins")
	assert.Equal(t, []settlement.Payable{{From: "b", To: "a", Amount: 1000}}, resp.Payments)
}

func TestSettleHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/settle", map[string]any{
		"payables": []settlement.Payable{
			{From: "a", To: "b", Amount: 500},
			{From: "b", To: "a", Amount: 200},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Payments []settlement.Payable `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []settlement.Payable{{From: "a", To: "b", Amount: 300}}, resp.Payments)
}

func TestSettleHandlerRejectsSelfPayment(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := postJSON(t, server, "/settle", map[string]any{
		"payables": []settlement.Payable{{From: "a", To: "a", Amount: 100}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestSettleExpensesHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	rr := postJSON(t, server, "/expenses/settle", map[string]any{
		"expenses": []map[string]any{
			{
				"id":              "green-fees",
				"amount_sats":     3000,
				"payer_id":        "a",
				"participant_ids": []string{"a", "b", "c"},
				"split_mode":      "equal",
			},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Payments []settlement.Payable `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []settlement.Payable{
		{From: "b", To: "a", Amount: 1000},
		{From: "c", To: "a", Amount: 1000},
	}, resp.Payments)
	assert.Len(t, mockNotifier.SendExpenseSummaryCalls, 1)
}

func TestCupLifecycleHandlers(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	rr := postJSON(t, server, "/cup/create", map[string]any{
		"name": "Autumn Cup",
		"players": []cup.Player{
			{ID: "a", Name: "Alice"},
			{ID: "b", Name: "Bob"},
		},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var created cup.Cup
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Len(t, created.Rounds, 4)

	// The opening leg is stroke play; Alice's card is two strokes better.
	round := completedMatchRound("cup-leg-1")
	round.GameMode = golf.ModeStroke
	rr = postJSON(t, server, "/cup/play", map[string]any{
		"cup_id":   created.ID,
		"round_id": "round-1",
		"round":    round,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var played struct {
		Standings cup.Standings `json:"standings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &played))
	assert.Equal(t, 4, played.Standings.Points[cup.TeamA])
	assert.Equal(t, 0, played.Standings.Points[cup.TeamB])
	assert.Len(t, mockNotifier.SendCupStandingsCalls, 1)

	// Replaying a completed leg is rejected.
	rr = postJSON(t, server, "/cup/play", map[string]any{
		"cup_id":   created.ID,
		"round_id": "round-1",
		"round":    round,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	req, err := http.NewRequest("GET", "/cup/results?cupID="+created.ID, nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var results struct {
		Standings cup.Standings     `json:"standings"`
		Results   []cup.RoundResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	assert.Len(t, results.Results, 1)
	assert.Equal(t, 4, results.Standings.Points[cup.TeamA])

	req, err = http.NewRequest("GET", "/cups", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Autumn Cup")
}

func TestProcessRoundsHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	rr := postJSON(t, server, "/rounds", map[string]any{"round": completedMatchRound("match-1")})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	req, err := http.NewRequest("POST", "/process", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rec, err := server.Store.GetRound("match-1")
	require.NoError(t, err)
	assert.Equal(t, rounds.StatusCompleted, rec.ProcessingStatus)
	assert.Contains(t, rec.Summary, "Alice wins")
	assert.Len(t, mockNotifier.SendRoundResultCalls, 1)
	assert.Len(t, mockNotifier.SendSettlementCalls, 1)
}

func TestRoundScoredEventHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	payload, err := msgpack.Marshal("match-1")
	require.NoError(t, err)

	body, err := json.Marshal(map[string]any{
		"subscription": "projects/TEST/subscriptions/round-scored",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(payload),
		},
	})
	require.NoError(t, err)

	req, err := http.NewRequest("POST", "/events/round-scored", bytes.NewReader(body))
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestRoundResultCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatRoundResultResponseFunc = func(rec *rounds.Record) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	require.NoError(t, server.Store.UpsertRound(completedMatchRound("match-1"), nil))

	form := url.Values{}
	form.Set("text", "match-1")
	req, err := http.NewRequest("POST", "/slack/command/round-result", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRoundResultCommandHandlerUnknownRound(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	form := url.Values{}
	form.Set("text", "no-such-round")
	req, err := http.NewRequest("POST", "/slack/command/round-result", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCupStandingsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatCupStandingsResponseFunc = func(c *cup.Cup, standings cup.Standings) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, mockNotifier)
	defer teardown()

	_, err := server.Cups.CreateCup("Autumn Cup", []cup.Player{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	})
	require.NoError(t, err)

	// Empty text asks for the latest cup.
	form := url.Values{}
	req, err := http.NewRequest("POST", "/slack/command/cup-standings", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestLifetimeMetricsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	req, err := http.NewRequest("POST", "/process", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req, err = http.NewRequest("GET", "/metrics/lifetime", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var counters map[string]int
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &counters))
	assert.Equal(t, 1, counters["process_runs"])
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	require.NoError(t, server.Store.UpsertRound(completedMatchRound("match-1"), nil))

	req, err := http.NewRequest("POST", "/clear?roundID=match-1", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, fmt.Sprintf("Cleared round %s from store!", "match-1"), rr.Body.String())

	_, err = server.Store.GetRound("match-1")
	assert.Error(t, err)
}
