// Package diagnostics implements actor.DiagnosticSink backends: an
// in-memory ring buffer for tests and local runs, and a SQL-backed sink
// (Postgres via pgx, or embedded SQLite) for durable audit trails of
// panics and terminations.
package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PoolConfig configures the pooled *sql.DB behind a SQLSink, mirroring
// the connection-pool tuning knobs used elsewhere in this stack's
// database layer.
type PoolConfig struct {
	DSN             string
	DriverName      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns conservative defaults suitable for a sink
// that is write-mostly and low-volume.
func DefaultPoolConfig(dsn, driverName string) PoolConfig {
	return PoolConfig{
		DSN:             dsn,
		DriverName:      driverName,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 10 * time.Minute,
	}
}

// pool wraps a *sql.DB opened and validated against PoolConfig.
type pool struct {
	db *sql.DB
}

func newPool(cfg PoolConfig) (*pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("diagnostics: DSN cannot be empty")
	}
	if cfg.DriverName == "" {
		return nil, fmt.Errorf("diagnostics: DriverName cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("diagnostics: MaxOpenConns must be positive")
	}

	db, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: open %s: %w", cfg.DriverName, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("diagnostics: ping %s: %w", cfg.DriverName, err)
	}

	return &pool{db: db}, nil
}

func (p *pool) Close() error {
	return p.db.Close()
}
