package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lalith1612/Youtube-LLM/internal/types"
)

// PostgresStore is a Store backed by PostgreSQL, for deployments where
// job status must survive restarts or be shared across instances.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and ensures the jobs
// table exists.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS playlist_jobs (
			playlist_id TEXT PRIMARY KEY,
			status      TEXT NOT NULL,
			message     TEXT NOT NULL DEFAULT '',
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure playlist_jobs table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Get returns the job for id, or nil if none exists
func (s *PostgresStore) Get(ctx context.Context, id string) (*types.PlaylistJob, error) {
	job := types.PlaylistJob{PlaylistID: id}
	err := s.pool.QueryRow(ctx,
		`SELECT status, message FROM playlist_jobs WHERE playlist_id = $1`,
		id,
	).Scan(&job.Status, &job.Message)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}
	return &job, nil
}

// Set unconditionally replaces the job for id
func (s *PostgresStore) Set(ctx context.Context, id string, job types.PlaylistJob) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO playlist_jobs (playlist_id, status, message, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (playlist_id)
		 DO UPDATE SET status = $2, message = $3, updated_at = NOW()`,
		id, job.Status, job.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to store job %s: %w", id, err)
	}
	return nil
}

// CompareAndSwap replaces the job for id only if the current status
// equals expect. An absent row matches expect == "".
func (s *PostgresStore) CompareAndSwap(ctx context.Context, id string, expect types.JobStatus, next types.PlaylistJob) (bool, error) {
	if expect == "" {
		tag, err := s.pool.Exec(ctx,
			`INSERT INTO playlist_jobs (playlist_id, status, message, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (playlist_id) DO NOTHING`,
			id, next.Status, next.Message,
		)
		if err != nil {
			return false, fmt.Errorf("failed to insert job %s: %w", id, err)
		}
		return tag.RowsAffected() == 1, nil
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE playlist_jobs SET status = $2, message = $3, updated_at = NOW()
		 WHERE playlist_id = $1 AND status = $4`,
		id, next.Status, next.Message, expect,
	)
	if err != nil {
		return false, fmt.Errorf("failed to swap job %s: %w", id, err)
	}
	return tag.RowsAffected() == 1, nil
}
