package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/expenses"
	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/pubsub"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roundID := r.URL.Query().Get("roundID")
		if roundID != "" {
			log.Info("Received request to clear a specific round", "roundID", roundID)
			s.Store.ClearRound(roundID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared round %s from store!", roundID)
			log.Info("Successfully cleared round from store", "roundID", roundID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			s.Cups.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Store.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

// RoundsHandler serves the round collection: GET lists every stored
// round, POST submits a scorecard for the processing pipeline.
func (s *Server) RoundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			s.submitRound(w, r)
			return
		}

		records, err := s.Store.GetAllRounds()
		if err != nil {
			http.Error(w, "Failed to get rounds", http.StatusInternalServerError)
			log.Error("Failed to get rounds from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(records); err != nil {
			log.Error("Failed to encode rounds to JSON", "error", err)
		}
	}
}

func (s *Server) submitRound(w http.ResponseWriter, r *http.Request) {
	isDryRun := isDryRunFromContext(r)

	var payload struct {
		Round  *golf.Round     `json:"round"`
		Config json.RawMessage `json:"config,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Error("Failed to decode round payload", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if payload.Round == nil || payload.Round.ID == "" {
		http.Error(w, "Round ID is required", http.StatusBadRequest)
		return
	}

	// Validate the card and the wager config up front so a bad round is
	// rejected at the door instead of wedging the pipeline.
	if err := validateCard(payload.Round); err != nil {
		log.Error("Rejected round with invalid card", "roundID", payload.Round.ID, "error", err)
		http.Error(w, fmt.Sprintf("Invalid round: %v", err), http.StatusBadRequest)
		return
	}
	if _, err := scoring.ParseConfig(payload.Round.GameMode, payload.Config); err != nil {
		log.Error("Rejected round with invalid config", "roundID", payload.Round.ID, "error", err)
		http.Error(w, fmt.Sprintf("Invalid config: %v", err), http.StatusBadRequest)
		return
	}

	if isDryRun {
		log.Info("[Dry Run] Would upsert round", "roundID", payload.Round.ID)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Round accepted.")
		return
	}

	if err := s.Store.UpsertRound(payload.Round, payload.Config); err != nil {
		log.Error("Failed to upsert round", "roundID", payload.Round.ID, "error", err)
		http.Error(w, "Failed to save round", http.StatusInternalServerError)
		return
	}
	log.Info("Round submitted", "roundID", payload.Round.ID, "mode", payload.Round.GameMode)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Round accepted.")
}

// validateCard rejects cards the format engines cannot score sensibly:
// a handicap outside the sanctioned allowance range or a stroke-index
// set that is not a permutation of the card.
func validateCard(round *golf.Round) error {
	for _, p := range round.Players {
		if p.Handicap < 0 || p.Handicap > golf.MaxHandicap {
			return fmt.Errorf("player %q handicap %d is outside 0..%d", p.ID, p.Handicap, golf.MaxHandicap)
		}
	}
	return golf.ValidateStrokeIndexes(round.Holes)
}

// ScoreRoundHandler scores a card synchronously and returns the result
// without persisting anything. Useful for previewing a wager before the
// round is submitted for real.
func (s *Server) ScoreRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Round  *golf.Round     `json:"round"`
			Config json.RawMessage `json:"config,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Error("Failed to decode round payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.Round == nil {
			http.Error(w, "Round is required", http.StatusBadRequest)
			return
		}

		cfg, err := scoring.ParseConfig(payload.Round.GameMode, payload.Config)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid config: %v", err), http.StatusBadRequest)
			return
		}

		res, err := scoring.Score(payload.Round, cfg)
		if err != nil {
			log.Error("Failed to score round", "roundID", payload.Round.ID, "error", err)
			http.Error(w, fmt.Sprintf("Failed to score round: %v", err), http.StatusUnprocessableEntity)
			return
		}

		payments, err := settlement.Net(res.Payables)
		if err != nil {
			log.Error("Failed to net payables", "roundID", payload.Round.ID, "error", err)
			http.Error(w, "Failed to net payables", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"result":   res,
			"payments": payments,
		}); err != nil {
			log.Error("Failed to encode score result to JSON", "error", err)
		}
	}
}

// SettleHandler nets a raw list of obligations into the minimal payment
// list.
func (s *Server) SettleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Payables []settlement.Payable `json:"payables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Error("Failed to decode payables payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		payments, err := settlement.Net(payload.Payables)
		if err != nil {
			log.Error("Failed to net payables", "error", err)
			http.Error(w, fmt.Sprintf("Failed to net payables: %v", err), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{"payments": payments}); err != nil {
			log.Error("Failed to encode payments to JSON", "error", err)
		}
	}
}

// SettleExpensesHandler splits a trip's shared costs, nets the balances
// and posts the summary to the group channel.
func (s *Server) SettleExpensesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var payload struct {
			Expenses []expenses.Expense `json:"expenses"`
			// Sats per unit of fiat, keyed by currency code. Only needed
			// when an expense carries a fiat amount instead of sats.
			Rates map[string]float64 `json:"rates,omitempty"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Error("Failed to decode expenses payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var convert expenses.Converter
		if len(payload.Rates) > 0 {
			convert = expenses.StaticConverter(payload.Rates)
		}

		summary, err := expenses.Settle(payload.Expenses, convert)
		if err != nil {
			log.Error("Failed to settle expenses", "error", err)
			http.Error(w, fmt.Sprintf("Failed to settle expenses: %v", err), http.StatusUnprocessableEntity)
			return
		}

		if err := s.Notifier.SendExpenseSummary(summary, isDryRun); err != nil {
			log.Error("Failed to send expense summary notification", "error", err)
		}
		if !isDryRun {
			s.MetricsStore.Increment("expenses_settled")
			if err := s.pubsub.SendMessage(pubsub.EventExpensesSettled, summary); err == nil {
				s.Metrics.IncEventsPublished()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(summary); err != nil {
			log.Error("Failed to encode expense summary to JSON", "error", err)
		}
	}
}

func (s *Server) ListCupsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cups, err := s.Cups.ListCups()
		if err != nil {
			http.Error(w, "Failed to get cups", http.StatusInternalServerError)
			log.Error("Failed to get cups from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(cups); err != nil {
			log.Error("Failed to encode cups to JSON", "error", err)
		}
	}
}

func (s *Server) CreateCupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var payload struct {
			Name    string       `json:"name"`
			Players []cup.Player `json:"players"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Error("Failed to decode cup payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var c *cup.Cup
		var err error
		if isDryRun {
			log.Info("[Dry Run] Would create cup", "name", payload.Name)
			c, err = cup.NewCup(payload.Name, payload.Players)
		} else {
			c, err = s.Cups.CreateCup(payload.Name, payload.Players)
		}
		if err != nil {
			log.Error("Failed to create cup", "name", payload.Name, "error", err)
			http.Error(w, fmt.Sprintf("Failed to create cup: %v", err), http.StatusUnprocessableEntity)
			return
		}
		log.Info("Cup created", "cupID", c.ID, "name", c.Name, "players", len(c.Players))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(c); err != nil {
			log.Error("Failed to encode cup to JSON", "error", err)
		}
	}
}

// PlayCupRoundHandler scores one leg of a cup from a completed card,
// persists the outcome and announces the updated standings.
func (s *Server) PlayCupRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)

		var payload struct {
			CupID   string      `json:"cup_id"`
			RoundID string      `json:"round_id"`
			Round   *golf.Round `json:"round"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Error("Failed to decode cup round payload", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.Round == nil {
			http.Error(w, "Round is required", http.StatusBadRequest)
			return
		}

		c, err := s.Cups.GetCup(payload.CupID)
		if err != nil {
			log.Error("Failed to get cup", "cupID", payload.CupID, "error", err)
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}

		prior, err := s.Cups.GetRoundResults(c.ID)
		if err != nil {
			log.Error("Failed to get cup results", "cupID", c.ID, "error", err)
			http.Error(w, "Failed to get cup results", http.StatusInternalServerError)
			return
		}

		res, err := cup.PlayRound(c, payload.RoundID, payload.Round)
		if err != nil {
			log.Error("Failed to play cup round", "cupID", c.ID, "roundID", payload.RoundID, "error", err)
			http.Error(w, fmt.Sprintf("Failed to play cup round: %v", err), http.StatusUnprocessableEntity)
			return
		}

		if isDryRun {
			log.Info("[Dry Run] Would save cup round result", "cupID", c.ID, "roundID", res.RoundID)
		} else {
			if err := s.Cups.SaveRoundResult(res); err != nil {
				log.Error("Failed to save cup round result", "cupID", c.ID, "roundID", res.RoundID, "error", err)
				http.Error(w, "Failed to save cup round result", http.StatusInternalServerError)
				return
			}
			if err := s.Cups.SaveCup(c); err != nil {
				log.Error("Failed to save cup", "cupID", c.ID, "error", err)
				http.Error(w, "Failed to save cup", http.StatusInternalServerError)
				return
			}
		}

		standings := cup.Results(c, append(prior, *res))
		log.Info("Cup round played", "cupID", c.ID, "roundID", res.RoundID, "summary", res.Summary)

		if err := s.Notifier.SendCupStandings(c, standings, isDryRun); err != nil {
			log.Error("Failed to send cup standings notification", "cupID", c.ID, "error", err)
		}
		if !isDryRun {
			if err := s.pubsub.SendMessage(pubsub.EventCupRoundPlayed, c.ID); err == nil {
				s.Metrics.IncEventsPublished()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"result":    res,
			"standings": standings,
		}); err != nil {
			log.Error("Failed to encode cup round result to JSON", "error", err)
		}
	}
}

func (s *Server) CupResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cupID := r.URL.Query().Get("cupID")
		if cupID == "" {
			http.Error(w, "cupID is required", http.StatusBadRequest)
			return
		}

		c, err := s.Cups.GetCup(cupID)
		if err != nil {
			log.Error("Failed to get cup", "cupID", cupID, "error", err)
			http.Error(w, "Cup not found", http.StatusNotFound)
			return
		}

		results, err := s.Cups.GetRoundResults(c.ID)
		if err != nil {
			log.Error("Failed to get cup results", "cupID", c.ID, "error", err)
			http.Error(w, "Failed to get cup results", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"cup":       c,
			"results":   results,
			"standings": cup.Results(c, results),
		}); err != nil {
			log.Error("Failed to encode cup results to JSON", "error", err)
		}
	}
}

// LifetimeMetricsHandler serves the durable counters, which survive
// restarts unlike the Prometheus registry.
func (s *Server) LifetimeMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.MetricsStore.GetAll()
		if err != nil {
			http.Error(w, "Failed to get metrics", http.StatusInternalServerError)
			log.Error("Failed to get lifetime metrics from store", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(counters); err != nil {
			log.Error("Failed to encode metrics to JSON", "error", err)
		}
	}
}

func (s *Server) ProcessRoundsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting round processing...")
		isDryRun := isDryRunFromContext(r)

		if !isDryRun {
			s.MetricsStore.Increment("process_runs")
		}
		s.Processor.ProcessRounds(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Round processing completed.")
		log.Info("Round processing finished.")
	}
}

// RoundScoredEventHandler receives Pub/Sub push deliveries for scored
// rounds and nudges the pipeline so the settlement and announcement
// steps run without waiting for the next scheduled /process call.
func (s *Server) RoundScoredEventHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received round scored message", "body", string(bodyBytes))
		// Define a small struct to decode the incoming JSON's `data` field
		var pubsubMsg struct {
			Subscription string `json:"subscription"`
			Message      struct {
				Data string `json:"data"` // base64-encoded message payload
			} `json:"message"`
		}

		// Parse the outer JSON to get `data`
		if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		// Decode base64 to raw MessagePack bytes
		rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		isDryRun := isDryRunFromContext(r)
		var roundID string
		if err := s.pubsub.ProcessMessage(rawData, &roundID); err != nil {
			log.Error("Failed to decode round scored payload", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Round scored event received", "roundID", roundID)
		s.Processor.ProcessRounds(isDryRun)
		w.Write([]byte("OK"))
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// RoundResultCommandHandler returns a handler for the /round-result Slack command.
// The command text is a round ID; an empty text asks for the latest round.
func (s *Server) RoundResultCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		roundID := r.FormValue("text")
		log.Info("Received round result command", "roundID", roundID)

		var rec *rounds.Record
		if roundID == "" {
			records, err := s.Store.GetAllRounds()
			if err != nil || len(records) == 0 {
				http.Error(w, "No rounds found", http.StatusNotFound)
				log.Warn("No rounds available for command", "error", err)
				return
			}
			rec = records[0]
		} else {
			var err error
			rec, err = s.Store.GetRound(roundID)
			if err != nil {
				http.Error(w, "Round not found", http.StatusNotFound)
				log.Warn("Could not find round", "roundID", roundID, "error", err)
				return
			}
		}

		msg, err := s.Notifier.FormatRoundResultResponse(rec)
		if err != nil {
			http.Error(w, "Failed to format round result", http.StatusInternalServerError)
			log.Error("Failed to format round result", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// CupStandingsCommandHandler returns a handler for the /cup-standings Slack command.
// The command text is a cup ID; an empty text asks for the latest cup.
func (s *Server) CupStandingsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		cupID := r.FormValue("text")
		log.Info("Received cup standings command", "cupID", cupID)

		var c *cup.Cup
		if cupID == "" {
			cups, err := s.Cups.ListCups()
			if err != nil || len(cups) == 0 {
				http.Error(w, "No cups found", http.StatusNotFound)
				log.Warn("No cups available for command", "error", err)
				return
			}
			c = cups[0]
		} else {
			var err error
			c, err = s.Cups.GetCup(cupID)
			if err != nil {
				http.Error(w, "Cup not found", http.StatusNotFound)
				log.Warn("Could not find cup", "cupID", cupID, "error", err)
				return
			}
		}

		results, err := s.Cups.GetRoundResults(c.ID)
		if err != nil {
			http.Error(w, "Failed to get cup results", http.StatusInternalServerError)
			log.Error("Failed to get cup results", "cupID", c.ID, "error", err)
			return
		}

		msg, err := s.Notifier.FormatCupStandingsResponse(c, cup.Results(c, results))
		if err != nil {
			http.Error(w, "Failed to format cup standings", http.StatusInternalServerError)
			log.Error("Failed to format cup standings", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
