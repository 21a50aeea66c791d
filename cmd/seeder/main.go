package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pinseekr/pinseekr-server/internal/golf"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

// standardCard is a par-72 card with the stroke index matching the hole
// number, which is all the seeded rounds need.
func standardCard() []golf.Hole {
	holes := make([]golf.Hole, 18)
	for i := range holes {
		holes[i] = golf.Hole{Number: i + 1, Par: 4, StrokeIndex: i + 1}
	}
	return holes
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	// Create 4 dummy players to use in rounds
	dummyPlayers := []golf.Player{
		{ID: "player-1", Name: "Seeder Player A", Handicap: 2},
		{ID: "player-2", Name: "Seeder Player B", Handicap: 10},
		{ID: "player-3", Name: "Seeder Player C", Handicap: 12},
		{ID: "player-4", Name: "Seeder Player D", Handicap: 18},
	}

	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, handicap) VALUES (?, ?, ?)", p.ID, p.Name, p.Handicap)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.Name, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	holes := standardCard()
	holesJSON, err := json.Marshal(holes)
	if err != nil {
		log.Fatalf("Failed to marshal holes: %s", err)
	}

	const batchSize = 100 // Insert 100 rounds at a time
	const numRounds = 10000

	log.Info("Preparing to insert dummy rounds...", "total", numRounds, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*10) // 10 columns per round

	for i := 0; i < numRounds; i++ {
		playedAt := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)

		players := make([]golf.Player, len(dummyPlayers))
		copy(players, dummyPlayers)
		for j := range players {
			scores := make([]int, len(holes))
			for k := range scores {
				scores[k] = holes[k].Par + rand.Intn(4) - 1
			}
			players[j].Scores = scores
		}
		playersJSON, _ := json.Marshal(players)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			fmt.Sprintf("Seeded round %d", i+1),
			string(golf.ModeSkins),
			string(golf.StatusCompleted),
			holesJSON,
			playersJSON,
			[]byte("{}"),
			"COMPLETED",
			playedAt.Unix(),
			playedAt.Unix(),
		)

		if (i+1)%batchSize == 0 || (i+1) == numRounds {
			stmt := fmt.Sprintf(`
				INSERT INTO rounds (id, name, game_mode, status, holes_json, players_json,
					config_json, processing_status, created_at, updated_at)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*10)
			log.Info("Inserted batch", "completed", i+1, "total", numRounds)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy rounds.", "duration", duration)
}
