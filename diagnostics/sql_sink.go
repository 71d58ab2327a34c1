package diagnostics

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" database/sql driver

	"github.com/fluxorio/actormesh/actor"
)

// SQLSink records every DiagnosticEvent as a row in an actor_events
// table, reachable through Go's database/sql, so the choice of backend
// (Postgres, SQLite) is just a DriverName away.
type SQLSink struct {
	pool       *pool
	insertStmt string
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS actor_events (
	actor_id   BIGINT NOT NULL,
	cause      TEXT NOT NULL,
	err        TEXT,
	occurred_at TIMESTAMP NOT NULL
)`

// NewPostgresSink opens a SQLSink backed by Postgres through pgx's
// database/sql driver.
func NewPostgresSink(dsn string) (*SQLSink, error) {
	return newSQLSink(DefaultPoolConfig(dsn, "pgx"))
}

// NewSQLiteSink opens a SQLSink backed by an embedded SQLite database
// file at path.
func NewSQLiteSink(path string) (*SQLSink, error) {
	cfg := DefaultPoolConfig(path, "sqlite3")
	// SQLite does not tolerate concurrent writers well; keep the pool to
	// a single connection so INSERTs serialize instead of racing.
	cfg.MaxOpenConns = 1
	cfg.MaxIdleConns = 1
	return newSQLSink(cfg)
}

func newSQLSink(cfg PoolConfig) (*SQLSink, error) {
	p, err := newPool(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := p.db.ExecContext(ctx, createTableSQL); err != nil {
		p.Close()
		return nil, err
	}

	insertStmt := `INSERT INTO actor_events (actor_id, cause, err, occurred_at) VALUES ($1, $2, $3, $4)`
	if cfg.DriverName == "sqlite3" {
		insertStmt = `INSERT INTO actor_events (actor_id, cause, err, occurred_at) VALUES (?, ?, ?, ?)`
	}

	return &SQLSink{pool: p, insertStmt: insertStmt}, nil
}

// Record implements actor.DiagnosticSink.
func (s *SQLSink) Record(event actor.DiagnosticEvent) error {
	var errText sql.NullString
	if event.Err != nil {
		errText = sql.NullString{String: event.Err.Error(), Valid: true}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := s.pool.db.ExecContext(ctx, s.insertStmt,
		uint64(event.ActorID), event.Cause.String(), errText, event.At,
	)
	return err
}

// Close releases the underlying connection pool.
func (s *SQLSink) Close() error {
	return s.pool.Close()
}
