package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// DefaultMaxConns bounds the shared local pool.
const DefaultMaxConns int32 = 10

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if maxConns <= 0 {
		maxConns = DefaultMaxConns
	}
	config.MaxConns = maxConns
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("Successfully connected to PostgreSQL database.", "max_conns", maxConns)
	return pool, nil
}

// ClosePgxPool closes the PostgreSQL connection pool.
func ClosePgxPool(pool *pgxpool.Pool) {
	if pool != nil {
		pool.Close()
		slog.Info("PostgreSQL connection pool closed.")
	}
}

// SharedDB is the process-wide local connection pool. It is opened on first
// use and handed out as an sqlx handle over the pgx pool.
type SharedDB struct {
	url      string
	maxConns int32

	once sync.Once
	pool *pgxpool.Pool
	db   *sqlx.DB
	err  error
}

// NewSharedDB prepares a lazily opened pool for databaseURL.
func NewSharedDB(databaseURL string, maxConns int32) *SharedDB {
	return &SharedDB{url: databaseURL, maxConns: maxConns}
}

// DB returns the shared handle, opening the pool on the first call. A failed
// open is remembered and returned to every later caller.
func (s *SharedDB) DB(ctx context.Context) (*sqlx.DB, error) {
	s.once.Do(func() {
		s.pool, s.err = NewPgxPool(context.WithoutCancel(ctx), s.url, s.maxConns)
		if s.err != nil {
			return
		}
		s.db = sqlx.NewDb(stdlib.OpenDBFromPool(s.pool), "pgx")
	})
	return s.db, s.err
}

// Close releases the pool if it was opened.
func (s *SharedDB) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
	ClosePgxPool(s.pool)
}
