package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store keeps lifetime counters in the metrics table so they survive
// restarts, unlike the Prometheus counters which reset with the process.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a durable counter store on the given database.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment bumps a counter by one, creating it on first use. Counter
// writes are best effort: a failed bump is logged, never surfaced.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment lifetime counter", "error", err, "key", key)
	} else {
		log.Debug("Incremented lifetime counter", "key", key)
	}
}

// GetAll returns every lifetime counter by key.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metrics[key] = value
	}
	return metrics, nil
}
