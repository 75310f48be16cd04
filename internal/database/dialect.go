package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ErrEmptyURL is returned when no connection string is configured.
var ErrEmptyURL = errors.New("database url is empty")

// Dialect describes how to talk to one supported engine.
type Dialect struct {
	// Name is the engine name used in logs and to pick the schema script.
	Name string

	// DriverName is the database/sql driver; sqlx derives its bind type from it.
	DriverName string

	// Placeholder is the squirrel placeholder format for the engine.
	Placeholder sq.PlaceholderFormat

	// Isolation is requested for every unit-of-work.
	Isolation sql.IsolationLevel
}

var (
	// Postgres goes through pgx's database/sql adapter.
	Postgres = Dialect{
		Name:        "postgres",
		DriverName:  "pgx",
		Placeholder: sq.Dollar,
		Isolation:   sql.LevelReadCommitted,
	}

	// SQLite is serializable by construction; it does not accept other isolation levels.
	SQLite = Dialect{
		Name:        "sqlite",
		DriverName:  "sqlite3",
		Placeholder: sq.Question,
		Isolation:   sql.LevelDefault,
	}
)

// ResolveURL picks a Dialect for the connection string and rewrites it into the
// form the driver expects.
//
// Accepted forms:
//
//	postgres://…, postgresql://…, postgresql+asyncpg://…   -> Postgres
//	host=… user=… dbname=…                                 -> Postgres (key/value DSN)
//	sqlite:///relative.db, sqlite:////abs.db, sqlite://    -> SQLite (empty path = in-memory)
//	sqlite3://…, sqlite+aiosqlite://…, file:…, :memory:    -> SQLite
//
// SQLite connections always get foreign keys enabled so ON DELETE CASCADE applies,
// and transactions begin IMMEDIATE so concurrent writers queue on the busy
// timeout instead of failing when a read lock cannot be upgraded.
func ResolveURL(raw string) (Dialect, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Dialect{}, "", ErrEmptyURL
	}

	if strings.HasPrefix(raw, "file:") || strings.HasPrefix(raw, ":memory:") {
		return SQLite, withSQLiteDefaults(raw), nil
	}

	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		if strings.Contains(raw, "=") {
			return Postgres, raw, nil
		}
		return Dialect{}, "", fmt.Errorf("unrecognized database url %q", redact(raw))
	}

	// SQLAlchemy-style "dialect+driver" schemes keep only the dialect.
	scheme, _, _ = strings.Cut(strings.ToLower(scheme), "+")

	switch scheme {
	case "postgres", "postgresql":
		return Postgres, "postgres://" + rest, nil

	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(rest, "/")
		if path == "" || strings.HasPrefix(path, "?") {
			path = ":memory:" + path
		}
		return SQLite, withSQLiteDefaults(path), nil

	default:
		return Dialect{}, "", fmt.Errorf("unsupported database scheme %q", scheme)
	}
}

// withSQLiteDefaults appends go-sqlite3's foreign key and transaction lock
// switches unless the DSN already sets them.
func withSQLiteDefaults(dsn string) string {
	if !strings.Contains(dsn, "_foreign_keys=") && !strings.Contains(dsn, "_fk=") {
		dsn = appendParam(dsn, "_foreign_keys=on")
	}
	if !strings.Contains(dsn, "_txlock=") {
		dsn = appendParam(dsn, "_txlock=immediate")
	}
	return dsn
}

func appendParam(dsn, param string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + param
	}
	return dsn + "?" + param
}

// isMemoryDSN reports whether a SQLite DSN names an in-memory database, which
// lives only as long as the connections holding it.
func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// redact keeps credentials out of error messages.
func redact(raw string) string {
	if len(raw) > 16 {
		return raw[:16] + "…"
	}
	return raw
}
