package cup

// CupService persists cups and their per-round results. The engine in
// this package is stateless; the store is the system of record for what
// has been played.
type CupService interface {
	// CreateCup validates the field, drafts teams if needed and persists
	// the new cup.
	CreateCup(name string, players []Player) (*Cup, error)

	// GetCup retrieves a cup by ID.
	GetCup(cupID string) (*Cup, error)

	// ListCups returns all cups, newest first.
	ListCups() ([]*Cup, error)

	// SaveCup persists the cup's current round state.
	SaveCup(c *Cup) error

	// SaveRoundResult records the outcome of one completed leg. Saving a
	// result twice for the same leg is an error.
	SaveRoundResult(res *RoundResult) error

	// GetRoundResults returns the recorded results for a cup in the
	// order they were played.
	GetRoundResults(cupID string) ([]RoundResult, error)

	// Clear wipes all cups and results.
	Clear()
}
