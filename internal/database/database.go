// Package database contains the logic for establishing
// connections to the relational store.
//
// It owns the single process-wide connection pool and
// integrates the logger/tracer with the PostgreSQL driver (pgx).
//
// It handles:
//   - resolving the configured connection string into a dialect (PostgreSQL or SQLite)
//   - creating the database/sql pool wrapped by sqlx
//   - wiring query tracing/logging for pgx (tracelog + New Relic nrpgx5)
//   - ensuring the schema exists at startup
//   - per-request units of work
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/deppfellow/blog-api/internal/config"
	loggerConfig "github.com/deppfellow/blog-api/internal/logger"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
)

// Database wraps the connection pool, the resolved dialect and a logger.
//
// The struct is built once at startup and only read afterwards, so it is
// shared by every request without locking.
type Database struct {
	Pool    *sqlx.DB
	Dialect Dialect
	log     *zerolog.Logger
}

// multiTracer allows chaining multiple pgx tracers.
//
// pgx supports a single Tracer in ConnConfig; this adapter fans out to
// New Relic (APM) and tracelog (local SQL logging) when both are enabled.
type multiTracer struct {
	tracers []any
}

// TraceQueryStart threads the context through every tracer that supports it.
func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

// TraceQueryEnd calls TraceQueryEnd on every tracer that supports it.
func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the number of seconds to wait for the startup ping.
const DatabasePingTimeout = 10

// New creates the connection pool for the configured store and pings it.
//
// Behavior:
//   - Resolve the URL into a dialect and driver DSN
//   - PostgreSQL: parse into a pgx ConnConfig, attach New Relic and (in local env)
//     SQL log tracers, then open it through pgx's database/sql adapter
//   - SQLite: open through go-sqlite3
//   - Apply pool limits, ping, return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	dialect, dsn, err := ResolveURL(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database url: %w", err)
	}

	var db *sql.DB
	switch dialect.Name {
	case Postgres.Name:
		db, err = openPostgres(cfg, dsn, logger, loggerService)
		if err != nil {
			return nil, err
		}
	default:
		db, err = sql.Open(dialect.DriverName, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
	}

	configurePool(db, cfg.Database, dialect, dsn)

	database := &Database{
		Pool:    sqlx.NewDb(db, dialect.DriverName),
		Dialect: dialect,
		log:     logger,
	}

	// Ping with a timeout so startup fails fast if the store is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("dialect", dialect.Name).Msg("connected to the database")

	return database, nil
}

// openPostgres builds a *sql.DB backed by pgx so the pgx tracer hooks keep working.
func openPostgres(cfg *config.Config, dsn string, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx config: %w", err)
	}

	// New Relic PostgreSQL instrumentation, only when the agent is running.
	if loggerService.GetApplication() != nil {
		connConfig.Tracer = nrpgx5.NewTracer()
	}

	// In local env, log every statement through pgx tracelog + zerolog. Very noisy.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if connConfig.Tracer != nil {
			connConfig.Tracer = &multiTracer{
				tracers: []any{connConfig.Tracer, localTracer},
			}
		} else {
			connConfig.Tracer = localTracer
		}
	}

	return stdlib.OpenDB(*connConfig), nil
}

// configurePool applies the configured limits.
//
// An in-memory SQLite database lives and dies with its connections, so it is
// pinned to a single connection that is never recycled. That covers ":memory:",
// "file::memory:" and "file:name?mode=memory" alike.
func configurePool(db *sql.DB, cfg config.DatabaseConfig, dialect Dialect, dsn string) {
	if dialect.Name == SQLite.Name && isMemoryDSN(dsn) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
		return
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
}

// Close closes the connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")
	return db.Pool.Close()
}
