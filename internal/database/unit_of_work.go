package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// UnitOfWork is one transaction bound to one pooled connection.
//
// A request opens exactly one, passes it to every repository call, and
// defers Release so the connection returns to the pool on every exit path.
// It satisfies sqlx.ExtContext through the embedded *sqlx.Tx.
type UnitOfWork struct {
	*sqlx.Tx
	log      *zerolog.Logger
	finished bool
}

// Begin opens a unit-of-work at the dialect's isolation level.
func (db *Database) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx, err := db.Pool.BeginTxx(ctx, &sql.TxOptions{Isolation: db.Dialect.Isolation})
	if err != nil {
		return nil, fmt.Errorf("failed to begin unit of work: %w", err)
	}

	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = db.log
	}

	return &UnitOfWork{Tx: tx, log: log}, nil
}

// Commit commits the transaction. The unit-of-work is finished afterwards
// whether or not the commit succeeded.
func (u *UnitOfWork) Commit() error {
	u.finished = true
	return u.Tx.Commit()
}

// Rollback discards the transaction. Rolling back an already finished
// transaction (e.g. after a failed commit) is not an error.
func (u *UnitOfWork) Rollback() error {
	u.finished = true
	if err := u.Tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// Release rolls back the transaction unless it was already committed or rolled back.
func (u *UnitOfWork) Release() {
	if u.finished {
		return
	}
	if err := u.Rollback(); err != nil {
		u.log.Warn().Err(err).Msg("failed to release unit of work")
	}
}
