// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mirova/fluxquiz/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for answered-round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			task_id TEXT NOT NULL,
			answered_at TEXT NOT NULL,
			option_count INTEGER NOT NULL,
			series_length INTEGER NOT NULL,
			selected INTEGER NOT NULL,
			correct_option INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			response_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_answered_at ON rounds(answered_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores one answered round.
func (s *Store) InsertRound(ctx context.Context, round model.RoundRecord) (int64, error) {
	correct := 0
	if round.Correct {
		correct = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (task_id, answered_at, option_count, series_length, selected, correct_option, correct, response_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		round.TaskID,
		round.AnsweredAt.Format(time.RFC3339Nano),
		round.OptionCount,
		round.SeriesLength,
		round.Selected,
		round.CorrectOption,
		correct,
		round.ResponseMs,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns round aggregates filtered by stats config, oldest first.
func (s *Store) ListRounds(ctx context.Context, cfg model.StatsConfig) ([]model.RoundAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "answered_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, answered_at, selected, correct, response_ms
		FROM rounds
		WHERE %s
		ORDER BY answered_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var answeredAt string
		var correct int
		if err := rows.Scan(&agg.RoundID, &answeredAt, &agg.Selected, &correct, &agg.ResponseMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, answeredAt)
		if err != nil {
			return nil, err
		}
		agg.AnsweredAt = parsed
		agg.Correct = correct != 0
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(rounds) > cfg.Last {
		rounds = rounds[len(rounds)-cfg.Last:]
	}
	return rounds, nil
}

// Totals returns the all-time answered and correct counts.
func (s *Store) Totals(ctx context.Context) (model.SessionStats, error) {
	var stats model.SessionStats
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(correct), 0) FROM rounds`)
	if err := row.Scan(&stats.TotalAnswered, &stats.TotalCorrect); err != nil {
		return model.SessionStats{}, err
	}
	return stats, nil
}
