package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Cpaul777/docai-parse-codes/internal/common"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS records (
	collection TEXT NOT NULL,
	name       TEXT NOT NULL,
	pdf_name   TEXT NOT NULL DEFAULT '',
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, name)
);`

// PostgresStore is the production record store.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// OpenPostgres creates a pgx pool and ensures the records table exists.
func OpenPostgres(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*PostgresStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "docai-parse-codes"

	dialCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(dialCtx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, fmt.Errorf("connect: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("successfully connected to database")
	return &PostgresStore{pool: pool, logger: logger}, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func (s *PostgresStore) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Put(ctx context.Context, collection, suggestedName string, payload []byte, pdfName string) (string, error) {
	// Insert-if-absent per candidate; ON CONFLICT DO NOTHING keeps the
	// probe-and-claim atomic under concurrent writers.
	for n := 0; ; n++ {
		name := candidateName(suggestedName, n)
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO records (collection, name, pdf_name, payload)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (collection, name) DO NOTHING`,
			collection, name, pdfName, payload,
		)
		if err != nil {
			return "", fmt.Errorf("insert record %q: %w", name, err)
		}
		if tag.RowsAffected() == 1 {
			s.logger.Info("record stored", "collection", collection, "name", name)
			return name, nil
		}
	}
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]StoredRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT collection, name, pdf_name, payload, created_at
		 FROM records WHERE collection = $1 ORDER BY created_at, name`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var r StoredRecord
		if err := rows.Scan(&r.Collection, &r.Name, &r.PDFName, &r.Payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
