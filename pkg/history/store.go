package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// SetupSchema initializes the history table in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const schemaHistory = `
CREATE TABLE IF NOT EXISTS namegen_history (
    name TEXT PRIMARY KEY,
    first_seen INTEGER NOT NULL,
    times INTEGER NOT NULL DEFAULT 1
);
`
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaHistory); err != nil {
		return fmt.Errorf("could not create history schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Entry is one recorded name.
type Entry struct {
	Name      string
	FirstSeen time.Time
	Times     int
}

// Store reads and writes the history table through prepared statements.
type Store struct {
	db           *sql.DB
	stmtList     *sql.Stmt
	stmtContains *sql.Stmt
	stmtCount    *sql.Stmt
	stmtRecord   *sql.Stmt
	logger       *slog.Logger
}

// NewStore prepares all statements the store needs. SetupSchema must have
// been called on db first.
func NewStore(db *sql.DB) (*Store, error) {
	stmtList, err := db.Prepare(`SELECT name, first_seen, times FROM namegen_history ORDER BY first_seen, name;`)
	if err != nil {
		return nil, err
	}

	stmtContains, err := db.Prepare(`SELECT COUNT(*) FROM namegen_history WHERE name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtCount, err := db.Prepare(`SELECT COUNT(*) FROM namegen_history;`)
	if err != nil {
		return nil, err
	}

	stmtRecord, err := db.Prepare(`INSERT INTO namegen_history (name, first_seen, times) VALUES (?, ?, 1) ON CONFLICT(name) DO UPDATE SET times = times + 1;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:           db,
		stmtList:     stmtList,
		stmtContains: stmtContains,
		stmtCount:    stmtCount,
		stmtRecord:   stmtRecord,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtList.Close()
	_ = s.stmtContains.Close()
	_ = s.stmtCount.Close()
	_ = s.stmtRecord.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Entries returns every recorded name, oldest first.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var firstSeen int64
		if err = rows.Scan(&entry.Name, &firstSeen, &entry.Times); err != nil {
			return nil, err
		}
		entry.FirstSeen = time.Unix(firstSeen, 0)
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Names returns every recorded name, oldest first.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names, nil
}

// Contains reports whether name was recorded before.
func (s *Store) Contains(ctx context.Context, name string) (bool, error) {
	var count int
	if err := s.stmtContains.QueryRowContext(ctx, name).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of distinct recorded names.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.stmtCount.QueryRowContext(ctx).Scan(&count)
	return count, err
}

// Record adds names to the history within a single transaction. Names that
// are already recorded have their counter incremented.
func (s *Store) Record(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmtRecord := tx.StmtContext(ctx, s.stmtRecord)
	now := time.Now().Unix()
	for _, name := range names {
		if _, err = stmtRecord.ExecContext(ctx, name, now); err != nil {
			return fmt.Errorf("could not record name '%s': %w", name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "History recorded",
		slog.Int("names_recorded", len(names)),
	)
	return nil
}

// Clear removes every recorded name and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM namegen_history;`)
	if err != nil {
		return 0, fmt.Errorf("could not clear history: %w", err)
	}
	removed, _ := res.RowsAffected()

	s.logger.InfoContext(ctx, "History cleared",
		slog.Int64("names_removed", removed),
	)
	return removed, nil
}
