package notifier

import (
	"github.com/pinseekr/pinseekr-server/internal/cup"
	"github.com/pinseekr/pinseekr-server/internal/expenses"
	"github.com/pinseekr/pinseekr-server/internal/rounds"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For scored rounds
	SendRoundResult(rec *rounds.Record, dryRun bool) (string, error)
	// For netted settlements
	SendSettlement(rec *rounds.Record, dryRun bool) (string, error)
	// For cup legs and standings
	SendCupStandings(c *cup.Cup, standings cup.Standings, dryRun bool) error
	// For trip expense summaries
	SendExpenseSummary(summary *expenses.Summary, dryRun bool) error

	// For formatting responses for slash commands
	FormatRoundResultResponse(rec *rounds.Record) (any, error)
	FormatCupStandingsResponse(c *cup.Cup, standings cup.Standings) (any, error)
}
