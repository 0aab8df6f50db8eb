/*
Package sqlite exports final account summaries to a SQLite database.

PURPOSE:
  An optional output sink alongside the CSV summary. Dashboards and
  ad-hoc SQL beat re-parsing CSV once runs get large.

NOT ENGINE STATE:
  The engine never reads this database. Every run starts from an empty
  engine and rewrites the accounts table; there is no crash recovery or
  resume. The exported rows are a snapshot of one finished run.

SCHEMA:
  accounts:
    client     INTEGER PRIMARY KEY
    available  TEXT (exact decimal string)
    held       TEXT
    total      TEXT
    locked     INTEGER (0/1)

  Amounts are stored as decimal strings, not REAL: SQLite floats would
  reintroduce the rounding the engine exists to avoid.

USAGE:
  store, err := sqlite.New("./summary.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  err = store.ExportReports(ctx, reports)

SEE ALSO:
  - csvio/writer.go: The primary output format
  - cmd/processor/main.go: The -export flag
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/payment-engine/ledger"
)

// Store writes account summaries to SQLite.
type Store struct {
	db *sql.DB
}

// New creates a store backed by the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS accounts (
		client    INTEGER PRIMARY KEY,
		available TEXT NOT NULL,
		held      TEXT NOT NULL,
		total     TEXT NOT NULL,
		locked    INTEGER NOT NULL DEFAULT 0
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ExportReports replaces the accounts table contents with the given
// reports. The whole export is one transaction: either every row lands
// or none do.
func (s *Store) ExportReports(ctx context.Context, reports []ledger.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("failed to clear accounts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (client, available, held, total, locked)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		locked := 0
		if r.Locked {
			locked = 1
		}
		_, err := stmt.ExecContext(ctx,
			uint64(r.Client),
			r.Available.String(),
			r.Held.String(),
			r.Total.String(),
			locked,
		)
		if err != nil {
			return fmt.Errorf("failed to insert account %d: %w", r.Client, err)
		}
	}

	return tx.Commit()
}

// Account reads back one exported row. Used by tests and ad-hoc tools.
func (s *Store) Account(ctx context.Context, client ledger.ClientID) (ledger.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT client, available, held, total, locked
		FROM accounts WHERE client = ?`, uint64(client))

	var (
		id        uint64
		available string
		held      string
		total     string
		locked    int
	)
	if err := row.Scan(&id, &available, &held, &total, &locked); err != nil {
		return ledger.Report{}, err
	}

	report := ledger.Report{Client: ledger.ClientID(id), Locked: locked != 0}
	var err error
	if report.Available, err = ledger.ParseAmount(available); err != nil {
		return ledger.Report{}, fmt.Errorf("account %d: available: %w", id, err)
	}
	if report.Held, err = ledger.ParseAmount(held); err != nil {
		return ledger.Report{}, fmt.Errorf("account %d: held: %w", id, err)
	}
	if report.Total, err = ledger.ParseAmount(total); err != nil {
		return ledger.Report{}, fmt.Errorf("account %d: total: %w", id, err)
	}
	return report, nil
}

// Count returns the number of exported accounts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n)
	return n, err
}
