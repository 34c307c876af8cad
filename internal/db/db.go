// Package db provides PostgreSQL access for users and per-user builder snapshots.
package db

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	applicationName = "resume-builder"
	defaultMaxConns = 10
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Open applies pending migrations and then connects. It is what the API
// server uses at startup.
func Open(ctx context.Context, databaseURL string) (*DB, error) {
	if err := Migrate(databaseURL); err != nil {
		return nil, err
	}
	return Connect(ctx, databaseURL)
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := poolConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", target(cfg), err)
	}

	log.Printf("[db] connected to %s (max %d conns)", target(cfg), cfg.MaxConns)
	return &DB{pool: pool}, nil
}

// poolConfig parses databaseURL and fills in the builder's pool defaults.
// A pool_max_conns parameter in the URL wins over the default.
func poolConfig(databaseURL string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}
	if !hasPoolMaxConns(databaseURL) {
		cfg.MaxConns = defaultMaxConns
	}
	return cfg, nil
}

func hasPoolMaxConns(databaseURL string) bool {
	return strings.Contains(databaseURL, "pool_max_conns=")
}

// target names the server and database for logs without credentials
func target(cfg *pgxpool.Config) string {
	c := cfg.ConnConfig
	return fmt.Sprintf("%s:%d/%s", c.Host, c.Port, c.Database)
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable
func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}
