// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, opens one unit-of-work
// per operation, calls repository methods to interact with the data,
// and turns storage outcomes into application errors.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/deppfellow/blog-api/internal/database"
	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/sqlerr"
	"github.com/rs/zerolog"
)

var (
	codeUserNotFound  = "USER_NOT_FOUND"
	codePostNotFound  = "POST_NOT_FOUND"
	codeOwnerNotFound = "OWNER_NOT_FOUND"
)

func userNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("User not found", false, &codeUserNotFound)
}

func postNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Post not found", false, &codePostNotFound)
}

func ownerNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Owner not found", false, &codeOwnerNotFound)
}

// isNotFound reports whether a repository lookup found no row.
func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// abortWrite rolls the unit-of-work back after a failed write or commit and
// returns the 400 carrying message. The store's own error is only logged.
func abortWrite(ctx context.Context, uow *database.UnitOfWork, err error, message string) error {
	logger := zerolog.Ctx(ctx)

	if rbErr := uow.Rollback(); rbErr != nil {
		logger.Error().Err(rbErr).Msg("failed to roll back unit of work")
	}

	logger.Error().
		Err(err).
		Str("reason", message).
		Str("db_error", string(sqlerr.ErrCode(err))).
		Msg("write failed")

	return sqlerr.HandleWriteError(err, message)
}

// commit finishes a write, mapping a failed commit the same way as a failed statement.
func commit(ctx context.Context, uow *database.UnitOfWork, message string) error {
	if err := uow.Commit(); err != nil {
		return abortWrite(ctx, uow, err, message)
	}
	return nil
}
