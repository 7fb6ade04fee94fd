package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"kakeibo/internal/aggregation"
)

// SQLiteRepository executes compiled aggregation queries against the
// ledger database. Each call is a fresh, independent read through the
// pooled connection; there are no retries and no caching.
type SQLiteRepository struct {
	db *sqlx.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Aggregate compiles the request and scans the ordered result rows.
func (r *SQLiteRepository) Aggregate(ctx context.Context, req aggregation.Request, lang string) ([]aggregation.Result, error) {
	query, args := aggregation.BuildQuery(req, lang)

	start := time.Now()
	var results []aggregation.Result
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("execute aggregation query: %w", err)
	}

	slog.DebugContext(ctx, "Aggregation executed",
		"user_id", req.UserID,
		"group_by", req.GroupBy.String(),
		"rows", len(results),
		"duration_ms", time.Since(start).Milliseconds())

	return results, nil
}
