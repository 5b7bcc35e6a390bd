// Package db provides PostgreSQL persistence for enhancement runs and their
// per-item artifacts.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Papalexios/sota-god-mode/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// schemaSQL holds the idempotent DDL for the run archive tables.
//
//go:embed schema.sql
var schemaSQL string

// Run represents one batch enhancement run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	ItemCount   int        `json:"item_count"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Connect establishes a connection pool to the database and applies the
// run archive schema, which is idempotent.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{pool: pool}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the run archive tables when missing. Connect calls this on
// every start; it is safe to call repeatedly.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun creates a new enhancement run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, itemCount int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO enhancement_runs (item_count, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		itemCount,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks an enhancement run as finished with the given status
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE enhancement_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveItem stores one enriched item for a run, replacing any previous
// version of the same item
func (db *DB) SaveItem(ctx context.Context, runID uuid.UUID, item *types.EnrichedItem) error {
	jsonBytes, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO run_items (run_id, item_id, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, item_id) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, item.ID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", item.ID, err)
	}
	return nil
}

// GetItem retrieves one enriched item by run and item ID, or nil when absent
func (db *DB) GetItem(ctx context.Context, runID uuid.UUID, itemID string) (*types.EnrichedItem, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM run_items WHERE run_id = $1 AND item_id = $2`,
		runID, itemID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
	}

	var item types.EnrichedItem
	if err := json.Unmarshal(content, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item %s: %w", itemID, err)
	}
	return &item, nil
}

// ListRuns retrieves recent enhancement runs, newest first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, item_count, status, created_at, completed_at
		 FROM enhancement_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.ItemCount, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
