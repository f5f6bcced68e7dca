// Package store keeps the history of rounds played in the current process.
//
// The database lives in memory and is discarded on Close.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/keyrush/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const memoryDSN = ":memory:"

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open creates an empty in-memory database and applies migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: sees its own database.
	db.SetMaxOpenConns(1)
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
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_s INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			errors INTEGER NOT NULL,
			spm INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_letter_stats (
			round_id INTEGER NOT NULL,
			letter TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (round_id, letter)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// InsertRound stores a completed round and its per-letter stats.
func (s *Store) InsertRound(ctx context.Context, round model.RoundSummary, letters []model.LetterStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (started_at, ended_at, duration_s, correct, errors, spm)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		round.StartedAt.Format(time.RFC3339Nano),
		round.EndedAt.Format(time.RFC3339Nano),
		round.DurationSeconds,
		round.Correct,
		round.Errors,
		round.ScorePerMinute,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(letters) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO round_letter_stats (round_id, letter, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, ls := range letters {
			if _, err = stmt.ExecContext(ctx, id, ls.Letter, ls.Correct, ls.Incorrect, ls.LatencySumMs, ls.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRounds returns all rounds in the order they were recorded.
func (s *Store) ListRounds(ctx context.Context) ([]model.RoundSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, duration_s, correct, errors, spm
		FROM rounds
		ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundSummary
	for rows.Next() {
		var r model.RoundSummary
		var startedAt, endedAt string
		if err := rows.Scan(&r.ID, &startedAt, &endedAt, &r.DurationSeconds, &r.Correct, &r.Errors, &r.ScorePerMinute); err != nil {
			return nil, err
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if r.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// ListLetterAggregates aggregates per-letter stats across the given rounds.
// An empty roundIDs selects every round.
func (s *Store) ListLetterAggregates(ctx context.Context, roundIDs []int64) ([]model.LetterAggregate, error) {
	where := ""
	args := make([]any, 0, len(roundIDs))
	if len(roundIDs) > 0 {
		placeholders := make([]string, len(roundIDs))
		for i, id := range roundIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		where = fmt.Sprintf("WHERE round_id IN (%s)", strings.Join(placeholders, ","))
	}
	query := fmt.Sprintf(`SELECT letter, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM round_letter_stats
		%s
		GROUP BY letter
		ORDER BY letter`, where)
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

	var result []model.LetterAggregate
	for rows.Next() {
		var agg model.LetterAggregate
		if err := rows.Scan(&agg.Letter, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
