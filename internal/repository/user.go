package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/blog-api/internal/model/user"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	builder sq.StatementBuilderType
}

func NewUserRepository(builder sq.StatementBuilderType) *UserRepository {
	return &UserRepository{builder: builder}
}

// returning is appended to writes so the stored row comes back in one round trip.
var userReturning = "RETURNING " + strings.Join(user.Columns, ", ")

func (r *UserRepository) CreateUser(ctx context.Context, q sqlx.QueryerContext, username, email string) (*user.User, error) {
	stmt, args, err := r.builder.
		Insert(user.Table).
		Columns("username", "email").
		Values(username, email).
		Suffix(userReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create user query: %w", err)
	}

	var created user.User
	if err := sqlx.GetContext(ctx, q, &created, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to execute create user query: %w", err)
	}

	return &created, nil
}

// GetUserByID wraps sql.ErrNoRows when the id does not exist.
func (r *UserRepository) GetUserByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*user.User, error) {
	stmt, args, err := r.builder.
		Select(user.Columns...).
		From(user.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u user.User
	if err := sqlx.GetContext(ctx, q, &u, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to get user by id=%d: %w", id, err)
	}

	return &u, nil
}

// GetUsers returns every account in insertion order.
func (r *UserRepository) GetUsers(ctx context.Context, q sqlx.QueryerContext) ([]user.User, error) {
	stmt, args, err := r.builder.
		Select(user.Columns...).
		From(user.Table).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get users query: %w", err)
	}

	users := []user.User{}
	if err := sqlx.SelectContext(ctx, q, &users, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	return users, nil
}

// UpdateUser replaces both columns. It wraps sql.ErrNoRows when the id does not exist.
func (r *UserRepository) UpdateUser(ctx context.Context, q sqlx.QueryerContext, id int64, username, email string) (*user.User, error) {
	stmt, args, err := r.builder.
		Update(user.Table).
		Set("username", username).
		Set("email", email).
		Where(sq.Eq{"id": id}).
		Suffix(userReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update user query: %w", err)
	}

	var updated user.User
	if err := sqlx.GetContext(ctx, q, &updated, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to update user id=%d: %w", id, err)
	}

	return &updated, nil
}

// DeleteUser removes the account row and reports how many rows were deleted.
// Posts are removed separately by PostRepository.DeletePostsByOwner.
func (r *UserRepository) DeleteUser(ctx context.Context, e sqlx.ExecerContext, id int64) (int64, error) {
	stmt, args, err := r.builder.
		Delete(user.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete user query: %w", err)
	}

	result, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user id=%d: %w", id, err)
	}

	return result.RowsAffected()
}
