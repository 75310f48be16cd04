package database

import (
	"context"
	"embed"
	"fmt"
	"strings"
)

// Schema scripts are embedded so the binary carries them; one per dialect.
//
//go:embed schema/*.sql
var schemas embed.FS

// statements splits a dialect's schema script into individual statements.
// The scripts contain no semicolons inside statements.
func (d Dialect) statements() ([]string, error) {
	script, err := schemas.ReadFile("schema/" + d.Name + ".sql")
	if err != nil {
		return nil, fmt.Errorf("reading %s schema: %w", d.Name, err)
	}

	var stmts []string
	for _, stmt := range strings.Split(string(script), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, nil
}

// EnsureSchema creates the users and posts tables if they do not exist.
//
// Every statement is idempotent, so this runs on every start. There is no
// version table: the schema is defined once and never evolves in place.
func (db *Database) EnsureSchema(ctx context.Context) error {
	stmts, err := db.Dialect.statements()
	if err != nil {
		return err
	}

	uow, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer uow.Release()

	for _, stmt := range stmts {
		if _, err := uow.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement: %w", err)
		}
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}

	db.log.Info().Str("dialect", db.Dialect.Name).Msg("database schema ensured")
	return nil
}
