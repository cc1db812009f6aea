package idempotency

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists idempotency records in the idempotency_key table.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Get(ctx context.Context, key string) (*Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx,
		`SELECT key, status_code, body, created_at FROM idempotency_key WHERE key = $1`,
		key).Scan(&rec.Key, &rec.StatusCode, &rec.Body, &rec.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PGStore) Put(ctx context.Context, rec *Record) error {
	// ON CONFLICT DO NOTHING keeps the first stored response authoritative
	// when two retries race.
	_, err := s.pool.Exec(ctx,
		`INSERT INTO idempotency_key (key, status_code, body)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO NOTHING`,
		rec.Key, rec.StatusCode, rec.Body)
	return err
}
