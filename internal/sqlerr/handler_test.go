package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_PgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	err := HandleError(fmt.Errorf("insert user: %w", pgErr))

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A User with this Email already exists", httpErr.Message)
}

func TestHandleError_PgForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23503",
		TableName:  "posts",
		ColumnName: "owner_id",
	}

	err := HandleError(pgErr)

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "POST_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Owner does not exist", httpErr.Message)
}

func TestHandleError_PgNotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "23502", TableName: "posts", ColumnName: "title"})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "POST_REQUIRED", httpErr.Code)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "title", httpErr.Errors[0].Field)
}

func TestHandleError_NoRowsAndUnknown(t *testing.T) {
	var httpErr *errs.HTTPError

	require.True(t, errors.As(HandleError(sql.ErrNoRows), &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)

	require.True(t, errors.As(HandleError(errors.New("connection reset")), &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "Internal Server Error", httpErr.Message)
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("User not found", false, nil)
	assert.Same(t, original, HandleError(original))
}

func TestHandleWriteError_FixedMessage(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", TableName: "users", ConstraintName: "users_username_key"}

	httpErr := HandleWriteError(pgErr, "User could not be created.")
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "User could not be created.", httpErr.Message)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)

	httpErr = HandleWriteError(errors.New("commit failed"), "Post could not be deleted.")
	assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	assert.Equal(t, "Post could not be deleted.", httpErr.Message)
}

func TestParseSQLiteTarget(t *testing.T) {
	table, column := parseSQLiteTarget("UNIQUE constraint failed: users.username")
	assert.Equal(t, "users", table)
	assert.Equal(t, "username", column)

	table, column = parseSQLiteTarget("UNIQUE constraint failed: users.username, users.email")
	assert.Equal(t, "users", table)
	assert.Equal(t, "username", column)

	table, column = parseSQLiteTarget("FOREIGN KEY constraint failed")
	assert.Empty(t, table)
	assert.Empty(t, column)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Empty(t, extractColumnForUniqueViolation("pk_users"))
}

func TestMapCodeAndSeverity(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, Other, MapCode("40001"))
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("insert: %w", sqlite3.Error{
		Code:         sqlite3.ErrConstraint,
		ExtendedCode: sqlite3.ErrConstraintUnique,
	})))
}
