package rounds

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pinseekr/pinseekr-server/internal/golf"
	"github.com/pinseekr/pinseekr-server/internal/settlement"
)

// store handles database operations for rounds and players
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new RoundStore.
func New(db *sql.DB) RoundStore {
	return &store{
		db: db,
	}
}

// UpsertRound inserts a round or refreshes an existing one. ON CONFLICT
// it updates the card and config but never the processing status.
func (s *store) UpsertRound(r *golf.Round, config json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	holesJSON, err := json.Marshal(r.Holes)
	if err != nil {
		tx.Rollback()
		return err
	}
	playersJSON, err := json.Marshal(r.Players)
	if err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rounds (id, name, game_mode, status, holes_json, players_json, config_json, processing_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			game_mode = excluded.game_mode,
			status = excluded.status,
			holes_json = excluded.holes_json,
			players_json = excluded.players_json,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	_, err = stmt.Exec(r.ID, r.Name, string(r.GameMode), string(r.Status), holesJSON, playersJSON, []byte(config), StatusNew, now, now)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// GetRound retrieves a round record by ID.
func (s *store) GetRound(roundID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(selectRecord+` WHERE id = ?`, roundID)
	rec, err := s.scanRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("round not found: %s", roundID)
		}
		return nil, fmt.Errorf("failed to get round: %w", err)
	}
	return rec, nil
}

// GetAllRounds returns every stored round, newest first.
func (s *store) GetAllRounds() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectRecord + ` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

// GetRoundsForProcessing retrieves rounds that have not yet completed the
// pipeline.
func (s *store) GetRoundsForProcessing() ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectRecord+` WHERE processing_status != ? ORDER BY created_at ASC`, StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query rounds for processing: %w", err)
	}
	defer rows.Close()

	return s.collectRecords(rows)
}

const selectRecord = `
	SELECT id, name, game_mode, status, holes_json, players_json, config_json,
		   processing_status, summary, result_json, payments_json, created_at, updated_at
	FROM rounds`

func (s *store) collectRecords(rows *sql.Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			log.Error("Failed to scan round row", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// scanRecord is a helper function to scan a single round row.
func (s *store) scanRecord(scanner interface{ Scan(...any) error }) (*Record, error) {
	var (
		r                    golf.Round
		rec                  Record
		gameMode, status     string
		processingStatus     string
		summary              sql.NullString
		holesJSON            []byte
		playersJSON          []byte
		configJSON           []byte
		resultJSON           []byte
		paymentsJSON         []byte
		createdAt, updatedAt int64
	)

	err := scanner.Scan(
		&r.ID, &r.Name, &gameMode, &status, &holesJSON, &playersJSON, &configJSON,
		&processingStatus, &summary, &resultJSON, &paymentsJSON, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.GameMode = golf.GameMode(gameMode)
	r.Status = golf.RoundStatus(status)
	if err := json.Unmarshal(holesJSON, &r.Holes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holes_json: %w", err)
	}
	if err := json.Unmarshal(playersJSON, &r.Players); err != nil {
		return nil, fmt.Errorf("failed to unmarshal players_json: %w", err)
	}

	rec.Round = &r
	rec.Config = configJSON
	rec.ProcessingStatus = ProcessingStatus(processingStatus)
	rec.Summary = summary.String
	rec.Result = resultJSON
	rec.CreatedAt = time.Unix(createdAt, 0)
	rec.UpdatedAt = time.Unix(updatedAt, 0)

	if len(paymentsJSON) > 0 {
		if err := json.Unmarshal(paymentsJSON, &rec.Payments); err != nil {
			log.Error("Failed to unmarshal payments_json", "error", err, "roundID", r.ID)
		}
	}
	return &rec, nil
}

// UpdateProcessingStatus transitions a round to a new pipeline state.
func (s *store) UpdateProcessingStatus(roundID string, status ProcessingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE rounds SET processing_status = ?, updated_at = ? WHERE id = ?",
		status, time.Now().Unix(), roundID,
	)
	return err
}

// SetResult stores the scoring outcome for a round.
func (s *store) SetResult(roundID, summary string, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		"UPDATE rounds SET summary = ?, result_json = ?, updated_at = ? WHERE id = ?",
		summary, []byte(result), time.Now().Unix(), roundID,
	)
	if err != nil {
		return fmt.Errorf("failed to set round result: %w", err)
	}
	return nil
}

// SetPayments stores the netted settlement for a round.
func (s *store) SetPayments(roundID string, payments []settlement.Payable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	paymentsJSON, err := json.Marshal(payments)
	if err != nil {
		return fmt.Errorf("failed to marshal payments: %w", err)
	}
	_, err = s.db.Exec(
		"UPDATE rounds SET payments_json = ?, updated_at = ? WHERE id = ?",
		paymentsJSON, time.Now().Unix(), roundID,
	)
	if err != nil {
		return fmt.Errorf("failed to set round payments: %w", err)
	}
	return nil
}

// UpsertPlayers adds or refreshes entries in the player registry.
func (s *store) UpsertPlayers(players []PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, handicap)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			handicap = excluded.handicap;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.Handicap); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// GetAllPlayers returns the registry sorted by name.
func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, name, handicap FROM players ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.Name, &p.Handicap); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// IsKnownPlayer reports whether a player exists in the registry.
func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id string
	err := s.db.QueryRow(`SELECT id FROM players WHERE id = ?`, playerID).Scan(&id)
	return err == nil
}

// Clear wipes all rounds and players.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM rounds`); err != nil {
		log.Error("Failed to clear rounds", "error", err)
	}
	if _, err := s.db.Exec(`DELETE FROM players`); err != nil {
		log.Error("Failed to clear players", "error", err)
	}
}

// ClearRound removes a single round.
func (s *store) ClearRound(roundID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM rounds WHERE id = ?`, roundID); err != nil {
		log.Error("Failed to clear round", "error", err, "roundID", roundID)
	}
}
