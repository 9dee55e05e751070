package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Store persists portfolio entries, closing prices, composite values and
// run history in a SQLite database.
type Store struct {
	db  *sqlx.DB
	log zerolog.Logger
}

func init() {
	// modernc registers itself as "sqlite"; sqlx only knows "sqlite3".
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(dbPath string, log zerolog.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ops tooling can read while the importer writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &Store{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS portfolio (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol             TEXT NOT NULL,
			active             INTEGER NOT NULL DEFAULT 1,
			tax_category       TEXT,
			allocation_percent TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_active ON portfolio(active)`,

		`CREATE TABLE IF NOT EXISTS closing_prices (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol      TEXT NOT NULL,
			trade_date  TEXT NOT NULL,
			price       TEXT NOT NULL,
			last_update TIMESTAMP NOT NULL,
			UNIQUE(symbol, trade_date)
		)`,

		`CREATE TABLE IF NOT EXISTS composite_prices (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			tax_category TEXT NOT NULL,
			as_of_date   TEXT NOT NULL,
			value        TEXT NOT NULL,
			computed_at  TIMESTAMP NOT NULL,
			UNIQUE(tax_category, as_of_date)
		)`,

		`CREATE TABLE IF NOT EXISTS run_history (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at        TIMESTAMP NOT NULL,
			finished_at       TIMESTAMP NOT NULL,
			symbols           INTEGER NOT NULL,
			total_new_records INTEGER NOT NULL,
			validation_passed INTEGER NOT NULL,
			triggered         INTEGER NOT NULL,
			skip_reason       TEXT
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
