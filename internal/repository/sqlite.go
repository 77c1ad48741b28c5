package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	name       TEXT NOT NULL,
	pdf_name   TEXT NOT NULL DEFAULT '',
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (collection, name)
);`

// SQLiteStore is the local/dev record store, also used by the batch CLI.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (and migrates) a SQLite-backed store at path. ":memory:"
// is supported; the pool is pinned to one connection so the in-memory
// database is shared.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	logger.Info("sqlite store ready", "path", path)
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, collection, suggestedName string, payload []byte, pdfName string) (string, error) {
	for n := 0; ; n++ {
		name := candidateName(suggestedName, n)
		var exists int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM records WHERE collection = ? AND name = ?`,
			collection, name,
		).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			_, err = s.db.ExecContext(ctx,
				`INSERT INTO records (collection, name, pdf_name, payload, created_at) VALUES (?, ?, ?, ?, ?)`,
				collection, name, pdfName, string(payload), time.Now().UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return "", fmt.Errorf("insert record %q: %w", name, err)
			}
			s.logger.Info("record stored", "collection", collection, "name", name)
			return name, nil
		}
		if err != nil {
			return "", fmt.Errorf("check record name %q: %w", name, err)
		}
	}
}

func (s *SQLiteStore) List(ctx context.Context, collection string) ([]StoredRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT collection, name, pdf_name, payload, created_at
		 FROM records WHERE collection = ? ORDER BY rowid`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var r StoredRecord
		var payload, created string
		if err := rows.Scan(&r.Collection, &r.Name, &r.PDFName, &payload, &created); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Payload = []byte(payload)
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			r.CreatedAt = ts
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
