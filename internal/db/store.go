package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var errNotInitialized = errors.New("db not initialized")

// Store is the single shared handle to PostgreSQL. It backs both the admin
// credentials and the site content.
type Store struct {
	pool *pgxpool.Pool
}

// Pool returns the underlying pgxpool.Pool
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStoreFromPool(pool), nil
}

// NewStoreFromPool wraps an existing pool, e.g. one owned by a test.
func NewStoreFromPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks connectivity; used by the db-check probe.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return errNotInitialized
	}
	return s.pool.Ping(ctx)
}

// validID reports whether id can be a primary key. Anything else is treated
// as a missing row rather than a query error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
