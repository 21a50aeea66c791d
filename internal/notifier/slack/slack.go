package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/expenses"
	"github.com/pinseekr/pinseekr-server/internal/metrics"
	"github.com/pinseekr/pinseekr-server/internal/notifier"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendRoundResult(rec *rounds.Record, dryRun bool) (string, error) {
	msg := s.formatRoundResult(rec)
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

func (s *Notifier) SendSettlement(rec *rounds.Record, dryRun bool) (string, error) {
	msg := s.formatSettlement(rec)
	_, ts, err := s.sendMessage(msg, dryRun)
	return ts, err
}

func (s *Notifier) SendCupStandings(c *cup.Cup, standings cup.Standings, dryRun bool) error {
	msg := s.formatCupStandings(c, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendExpenseSummary(summary *expenses.Summary, dryRun bool) error {
	msg := s.formatExpenseSummary(summary)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatRoundResultResponse formats a round result for a slash command response.
func (s *Notifier) FormatRoundResultResponse(rec *rounds.Record) (any, error) {
	return s.formatRoundResult(rec), nil
}

// FormatCupStandingsResponse formats cup standings for a slash command response.
func (s *Notifier) FormatCupStandingsResponse(c *cup.Cup, standings cup.Standings) (any, error) {
	return s.formatCupStandings(c, standings), nil
}

// formatRoundResult creates the Slack message for a scored round using Block Kit.
func (s *Notifier) formatRoundResult(rec *rounds.Record) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⛳ Round scored! ⛳", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	name := rec.Round.Name
	if name == "" {
		name = rec.Round.ID
	}
	detailsText := fmt.Sprintf("%s\nGame: %s", name, rec.Round.GameMode)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if rec.Summary != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", rec.Summary, true, false), nil, nil))
	}

	var playerLines []string
	for _, p := range rec.Round.Players {
		playerLines = append(playerLines, fmt.Sprintf("• %s (hcp %d): %d", p.Name, p.Handicap, p.Total()))
	}
	if len(playerLines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "Gross scores:\n"+strings.Join(playerLines, "\n"), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatSettlement creates the Slack message for a netted settlement.
func (s *Notifier) formatSettlement(rec *rounds.Record) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "💸 Time to settle up! 💸", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	names := make(map[string]string, len(rec.Round.Players))
	for _, p := range rec.Round.Players {
		names[p.ID] = p.Name
	}

	if len(rec.Payments) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "All square, nobody owes anything.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	var lines []string
	for _, p := range rec.Payments {
		lines = append(lines, fmt.Sprintf("• %s pays %s %s", displayName(names, p.From), displayName(names, p.To), formatSats(p.Amount)))
	}
	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d payments settle the round", len(rec.Payments)), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatCupStandings creates the Slack message for cup standings.
func (s *Notifier) formatCupStandings(c *cup.Cup, standings cup.Standings) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s 🏆", c.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scoreText := fmt.Sprintf("%s: %d\n%s: %d\nFirst to %d wins",
		cup.TeamA, standings.Points[cup.TeamA],
		cup.TeamB, standings.Points[cup.TeamB],
		c.TotalPointsToWin)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	var contextElements []slack.MixedElement
	if standings.IsComplete {
		contextElements = append(contextElements,
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s takes the cup! 🍾", standings.Winner), true, false))
	}
	if standings.MVP != "" {
		for _, p := range c.Players {
			if p.ID == standings.MVP {
				contextElements = append(contextElements,
					slack.NewTextBlockObject("plain_text", fmt.Sprintf("MVP so far: %s", p.Name), true, false))
				break
			}
		}
	}
	if len(contextElements) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatExpenseSummary creates the Slack message for a trip expense settlement.
func (s *Notifier) formatExpenseSummary(summary *expenses.Summary) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🧾 Trip expenses settled 🧾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var balanceLines []string
	for _, b := range summary.Balances {
		balanceLines = append(balanceLines, fmt.Sprintf("• %s: paid %s, owes %s", b.PlayerID, formatSats(b.PaidSats), formatSats(b.OwedSats)))
	}
	if len(balanceLines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", strings.Join(balanceLines, "\n"), true, false), nil, nil))
	}

	if len(summary.Payments) > 0 {
		var lines []string
		for _, p := range summary.Payments {
			lines = append(lines, fmt.Sprintf("• %s pays %s %s", p.From, p.To, formatSats(p.Amount)))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject("plain_text", "Settle with:\n"+strings.Join(lines, "\n"), true, false), nil, nil))
	}

	if len(summary.Warnings) > 0 {
		var contextElements []slack.MixedElement
		for _, w := range summary.Warnings {
			contextElements = append(contextElements, slack.NewTextBlockObject("plain_text", "⚠️ "+w, true, false))
		}
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

func displayName(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

func formatSats(amount int64) string {
	return fmt.Sprintf("%d sats", amount)
}
