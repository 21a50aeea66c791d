package processor

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/metrics"
	"github.com/pinseekr/pinseekr-server/internal/pubsub"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
	"github.com/pinseekr/pinseekr-server/internal/scoring"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// New creates a new Processor.
func New(store Store, notifier Notifier, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		pubsub:   pubsub,
		notifier: notifier,
		metrics:  metrics,
	}
}

// ProcessRounds fetches rounds that need processing and advances them through the state machine.
func (p *Processor) ProcessRounds(dryRun bool) {
	log.Info("Starting round processing...")
	records, err := p.store.GetRoundsForProcessing()
	if err != nil {
		log.Error("Failed to get rounds for processing", "error", err)
		return
	}

	if len(records) == 0 {
		log.Info("No rounds to process.")
		return
	}

	log.Info("Found rounds to process", "count", len(records))
	for _, rec := range records {
		startTime := time.Now()
		p.processRound(rec, dryRun)
		duration := time.Since(startTime).Seconds()
		p.metrics.ObserveScoringDuration(duration)
	}
	log.Info("Round processing finished.")
}

func (p *Processor) processRound(rec *rounds.Record, dryRun bool) {
	roundID := rec.Round.ID
	log.Info("Processing round", "roundID", roundID, "initial_status", rec.ProcessingStatus, "round_status", rec.Round.Status)
	for {
		currentState := rec.ProcessingStatus
		log.Debug("Evaluating round state", "roundID", roundID, "status", currentState)

		switch currentState {
		case rounds.StatusNew:
			// Ensure all players from the round are in our registry.
			var playersToUpsert []rounds.PlayerInfo
			for _, player := range rec.Round.Players {
				playersToUpsert = append(playersToUpsert, rounds.PlayerInfo{
					ID:       player.ID,
					Name:     player.Name,
					Handicap: player.Handicap,
				})
			}
			if len(playersToUpsert) > 0 {
				if err := p.store.UpsertPlayers(playersToUpsert); err != nil {
					log.Error("Failed to upsert players for round", "error", err, "roundID", roundID)
				}
			}

			switch rec.Round.Status {
			case golf.StatusCancelled:
				log.Info("Round is cancelled. Setting round to completed.", "roundID", roundID)
				p.updateStatus(rec, rounds.StatusCompleted, dryRun)
			case golf.StatusCompleted:
				if err := p.scoreRound(rec, dryRun); err != nil {
					log.Error("Failed to score round", "error", err, "roundID", roundID)
					return
				}
				p.updateStatus(rec, rounds.StatusScored, dryRun)
			default:
				// Still out on the course. Nothing to do yet.
				log.Debug("Round is still active. Waiting for the card to close.", "roundID", roundID)
			}

		case rounds.StatusScored:
			if err := p.settleRound(rec, dryRun); err != nil {
				log.Error("Failed to settle round", "error", err, "roundID", roundID)
				return
			}
			p.updateStatus(rec, rounds.StatusSettled, dryRun)

		case rounds.StatusSettled:
			log.Info("Round is settled. Sending notifications.", "roundID", roundID)
			if _, err := p.notifier.SendRoundResult(rec, dryRun); err != nil {
				log.Error("Failed to send round result notification", "error", err, "roundID", roundID)
			}
			if _, err := p.notifier.SendSettlement(rec, dryRun); err != nil {
				log.Error("Failed to send settlement notification", "error", err, "roundID", roundID)
			}
			p.updateStatus(rec, rounds.StatusAnnounced, dryRun)

		case rounds.StatusAnnounced:
			log.Info("Round announced. Marking round as complete.", "roundID", roundID)
			p.updateStatus(rec, rounds.StatusCompleted, dryRun)

		case rounds.StatusCompleted:
			log.Debug("Round is complete. No further processing needed.", "roundID", roundID)
			return // End of the line for this round

		default:
			log.Warn("Unknown processing status", "status", currentState, "roundID", roundID)
			return // Exit if status is unknown
		}

		// If the status hasn't changed, we're done with this round for now.
		if rec.ProcessingStatus == currentState {
			log.Debug("Round state did not change. Finished processing for now.", "roundID", roundID, "status", currentState)
			break
		}
	}
	log.Info("Finished processing round", "roundID", roundID, "final_status", rec.ProcessingStatus)
}

// scoreRound runs the round through its format engine and persists the
// result envelope.
func (p *Processor) scoreRound(rec *rounds.Record, dryRun bool) error {
	cfg, err := scoring.ParseConfig(rec.Round.GameMode, rec.Config)
	if err != nil {
		return err
	}

	res, err := scoring.Score(rec.Round, cfg)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(res)
	if err != nil {
		return err
	}
	if err := p.store.SetResult(rec.Round.ID, res.Summary, resultJSON); err != nil {
		return err
	}
	rec.Summary = res.Summary
	rec.Result = resultJSON

	p.metrics.IncRoundsScored()
	log.Info("Round scored", "roundID", rec.Round.ID, "summary", res.Summary)

	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventRoundScored, rec.Round.ID); err == nil {
			p.metrics.IncEventsPublished()
		}
	}
	return nil
}

// settleRound nets the scored round's obligations into the minimal
// payment list and persists it.
func (p *Processor) settleRound(rec *rounds.Record, dryRun bool) error {
	var env struct {
		Payables []settlement.Payable `json:"payables"`
	}
	if len(rec.Result) > 0 {
		if err := json.Unmarshal(rec.Result, &env); err != nil {
			return err
		}
	}

	payments, err := settlement.Net(env.Payables)
	if err != nil {
		return err
	}
	if err := p.store.SetPayments(rec.Round.ID, payments); err != nil {
		return err
	}
	rec.Payments = payments

	p.metrics.IncSettlementsComputed()
	log.Info("Round settled", "roundID", rec.Round.ID, "payments", len(payments))

	if !dryRun {
		if err := p.pubsub.SendMessage(pubsub.EventSettlementComputed, rec.Round.ID); err == nil {
			p.metrics.IncEventsPublished()
		}
	}
	return nil
}

func (p *Processor) updateStatus(rec *rounds.Record, status rounds.ProcessingStatus, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would update round status", "roundID", rec.Round.ID, "from", rec.ProcessingStatus, "to", status)
		rec.ProcessingStatus = status
		return
	}
	if err := p.store.UpdateProcessingStatus(rec.Round.ID, status); err != nil {
		log.Error("Failed to update processing status", "error", err, "roundID", rec.Round.ID, "status", status)
		return
	}
	rec.ProcessingStatus = status
}
