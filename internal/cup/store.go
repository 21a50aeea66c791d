package cup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pinseekr/pinseekr-server/internal/golf"
)

// store handles database operations for cups
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new cup store
func NewStore(db *sql.DB) CupService {
	return &store{
		db: db,
	}
}

// CreateCup builds a cup through NewCup and persists it.
func (s *store) CreateCup(name string, players []Player) (*Cup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := NewCup(name, players)
	if err != nil {
		return nil, err
	}
	c.ID = uuid.New().String()

	playersBlob, err := json.Marshal(c.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cup players: %w", err)
	}
	roundsBlob, err := json.Marshal(c.Rounds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cup rounds: %w", err)
	}

	query := `
		INSERT INTO cups (id, name, players_blob, rounds_blob, total_points_to_win, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().Unix()
	_, err = s.db.Exec(query, c.ID, c.Name, playersBlob, roundsBlob, c.TotalPointsToWin, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create cup: %w", err)
	}

	log.Info("Created cup", "id", c.ID, "name", c.Name, "players", len(c.Players))
	return c, nil
}

// GetCup retrieves a cup by ID.
func (s *store) GetCup(cupID string) (*Cup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, players_blob, rounds_blob, total_points_to_win
		FROM cups
		WHERE id = ?
	`
	row := s.db.QueryRow(query, cupID)

	c, err := scanCup(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cup not found: %s", cupID)
		}
		return nil, fmt.Errorf("failed to get cup: %w", err)
	}
	return c, nil
}

// ListCups returns all cups, newest first.
func (s *store) ListCups() ([]*Cup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, players_blob, rounds_blob, total_points_to_win
		FROM cups
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cups: %w", err)
	}
	defer rows.Close()

	var cups []*Cup
	for rows.Next() {
		c, err := scanCup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cup row: %w", err)
		}
		cups = append(cups, c)
	}
	return cups, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCup(row rowScanner) (*Cup, error) {
	var c Cup
	var playersBlob, roundsBlob []byte

	if err := row.Scan(&c.ID, &c.Name, &playersBlob, &roundsBlob, &c.TotalPointsToWin); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(playersBlob, &c.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cup players: %w", err)
	}
	if err := json.Unmarshal(roundsBlob, &c.Rounds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cup rounds: %w", err)
	}
	return &c, nil
}

// SaveCup persists the round completion state after a leg is played.
func (s *store) SaveCup(c *Cup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roundsBlob, err := json.Marshal(c.Rounds)
	if err != nil {
		return fmt.Errorf("failed to marshal cup rounds: %w", err)
	}

	query := `UPDATE cups SET rounds_blob = ?, updated_at = ? WHERE id = ?`
	res, err := s.db.Exec(query, roundsBlob, time.Now().Unix(), c.ID)
	if err != nil {
		return fmt.Errorf("failed to save cup: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cup not found: %s", c.ID)
	}
	return nil
}

// SaveRoundResult records one leg's outcome. The (cup_id, round_id)
// primary key makes a replayed leg fail at the database even if two
// processes race past the Completed flag.
func (s *store) SaveRoundResult(res *RoundResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pointsBlob, err := json.Marshal(res.PointsAwarded)
	if err != nil {
		return fmt.Errorf("failed to marshal points: %w", err)
	}
	contribBlob, err := json.Marshal(res.Contributions)
	if err != nil {
		return fmt.Errorf("failed to marshal contributions: %w", err)
	}

	query := `
		INSERT INTO cup_results (cup_id, round_id, game_mode, points_blob, summary, contributions_blob, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query, res.CupID, res.RoundID, string(res.GameMode), pointsBlob, res.Summary, contribBlob, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save round result: %w", err)
	}

	log.Info("Saved cup round result", "cup_id", res.CupID, "round_id", res.RoundID, "summary", res.Summary)
	return nil
}

// GetRoundResults returns a cup's recorded results in play order.
func (s *store) GetRoundResults(cupID string) ([]RoundResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT cup_id, round_id, game_mode, points_blob, summary, contributions_blob
		FROM cup_results
		WHERE cup_id = ?
		ORDER BY played_at ASC, round_id ASC
	`
	rows, err := s.db.Query(query, cupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cup results: %w", err)
	}
	defer rows.Close()

	var results []RoundResult
	for rows.Next() {
		var res RoundResult
		var mode string
		var pointsBlob, contribBlob []byte

		if err := rows.Scan(&res.CupID, &res.RoundID, &mode, &pointsBlob, &res.Summary, &contribBlob); err != nil {
			return nil, fmt.Errorf("failed to scan cup result row: %w", err)
		}
		res.GameMode = golf.GameMode(mode)
		if err := json.Unmarshal(pointsBlob, &res.PointsAwarded); err != nil {
			return nil, fmt.Errorf("failed to unmarshal points: %w", err)
		}
		if err := json.Unmarshal(contribBlob, &res.Contributions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal contributions: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// Clear wipes all cups and results.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM cup_results`); err != nil {
		log.Error("Failed to clear cup results", "error", err)
	}
	if _, err := s.db.Exec(`DELETE FROM cups`); err != nil {
		log.Error("Failed to clear cups", "error", err)
	}
}
