package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequences hands out named counters that only grow. Request events are
// ordered by their sequence rather than their row ID, so numbers stay
// unique after old rows are pruned.
type sequences struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequences(db *sql.DB) (*sequences, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS sequences (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequences table: %w", err)
	}
	return &sequences{db: db}, nil
}

// next returns the next value of the named counter, starting at 1.
func (s *sequences) next(ctx context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var v int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO sequences (name, value) VALUES (?, 1)
		ON CONFLICT(name) DO UPDATE SET value = value + 1
		RETURNING value`,
		name,
	).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return v, nil
}
