package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/Daniangio/golem/internal/models"
)

// Dialects supported by SQLStore.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// txAttempts bounds optimistic-concurrency retries per transaction.
const txAttempts = 5

// SQLStore persists each document as one JSON row with a version column used
// for compare-and-swap commits. The same code serves sqlite and postgres; only
// placeholder syntax differs.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	visibility TEXT NOT NULL,
	version    BIGINT NOT NULL,
	updated_at TIMESTAMP NOT NULL,
	doc        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS games_status_idx ON games (status, visibility);
`

// OpenSQL opens (and migrates) a SQL-backed store. dialect is "sqlite" or
// "postgres"; dsn is a file path for sqlite or a connection string for
// postgres.
func OpenSQL(ctx context.Context, dialect, dsn string) (*SQLStore, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "pgx"
	default:
		return nil, fmt.Errorf("store: unknown dialect %q", dialect)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// One writer at a time keeps the CAS loop honest on sqlite.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", dialect, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

// bind rewrites ? placeholders into the dialect's native form.
func (s *SQLStore) bind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Create(ctx context.Context, doc *models.GameDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode game %s: %w", doc.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		s.bind(`INSERT INTO games (id, status, visibility, version, updated_at, doc) VALUES (?, ?, ?, 1, ?, ?)`),
		doc.ID, string(doc.Status), string(doc.Visibility), doc.UpdatedAt.UTC(), string(payload))
	if err != nil {
		return fmt.Errorf("store: insert game %s: %w", doc.ID, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*models.GameDoc, error) {
	doc, _, err := s.getVersioned(ctx, id)
	return doc, err
}

func (s *SQLStore) getVersioned(ctx context.Context, id string) (*models.GameDoc, int64, error) {
	var (
		payload string
		version int64
	)
	err := s.db.QueryRowContext(ctx,
		s.bind(`SELECT version, doc FROM games WHERE id = ?`), id).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("store: select game %s: %w", id, err)
	}
	var doc models.GameDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, 0, fmt.Errorf("store: decode game %s: %w", id, err)
	}
	return &doc, version, nil
}

func (s *SQLStore) List(ctx context.Context, f Filter) ([]*models.GameDoc, error) {
	query := `SELECT doc FROM games`
	var (
		conds []string
		args  []any
	)
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Visibility != "" {
		conds = append(conds, "visibility = ?")
		args = append(args, string(f.Visibility))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	rows, err := s.db.QueryContext(ctx, s.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list games: %w", err)
	}
	defer rows.Close()

	var out []*models.GameDoc
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("store: scan game row: %w", err)
		}
		var doc models.GameDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("store: decode game row: %w", err)
		}
		// Seat membership lives inside the payload, so it filters here.
		if f.PlayerUID != "" && doc.SeatOf(f.PlayerUID) == "" {
			continue
		}
		out = append(out, &doc)
	}
	return out, rows.Err()
}

// RunTransaction reads the current row, applies fn and commits with a version
// compare-and-swap, retrying a bounded number of times on lost races.
func (s *SQLStore) RunTransaction(ctx context.Context, id string, fn TxFunc) (*models.GameDoc, error) {
	for attempt := 0; attempt < txAttempts; attempt++ {
		doc, version, err := s.getVersioned(ctx, id)
		if err != nil {
			return nil, err
		}
		deleteDoc, err := fn(doc)
		if err != nil {
			return nil, err
		}
		if deleteDoc {
			res, err := s.db.ExecContext(ctx,
				s.bind(`DELETE FROM games WHERE id = ? AND version = ?`), id, version)
			if err != nil {
				return nil, fmt.Errorf("store: delete game %s: %w", id, err)
			}
			if n, _ := res.RowsAffected(); n == 1 {
				return nil, nil
			}
			continue
		}

		payload, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("store: encode game %s: %w", id, err)
		}
		res, err := s.db.ExecContext(ctx,
			s.bind(`UPDATE games SET status = ?, visibility = ?, version = ?, updated_at = ?, doc = ? WHERE id = ? AND version = ?`),
			string(doc.Status), string(doc.Visibility), version+1, time.Now().UTC(), string(payload), id, version)
		if err != nil {
			return nil, fmt.Errorf("store: update game %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 1 {
			return doc, nil
		}
	}
	return nil, ErrConflict
}

// Put overwrites the row regardless of version, bumping it so concurrent
// transactions still notice the write.
func (s *SQLStore) Put(ctx context.Context, doc *models.GameDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("store: encode game %s: %w", doc.ID, err)
	}
	res, err := s.db.ExecContext(ctx,
		s.bind(`UPDATE games SET status = ?, visibility = ?, version = version + 1, updated_at = ?, doc = ? WHERE id = ?`),
		string(doc.Status), string(doc.Visibility), time.Now().UTC(), string(payload), doc.ID)
	if err != nil {
		return fmt.Errorf("store: put game %s: %w", doc.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }
