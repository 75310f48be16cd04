package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/jmoiron/sqlx"
)

type PostRepository struct {
	builder sq.StatementBuilderType
}

func NewPostRepository(builder sq.StatementBuilderType) *PostRepository {
	return &PostRepository{builder: builder}
}

var postReturning = "RETURNING " + strings.Join(post.Columns, ", ")

func (r *PostRepository) CreatePost(ctx context.Context, q sqlx.QueryerContext, title, content string, ownerID int64) (*post.Post, error) {
	stmt, args, err := r.builder.
		Insert(post.Table).
		Columns("title", "content", "owner_id").
		Values(title, content, ownerID).
		Suffix(postReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create post query: %w", err)
	}

	var created post.Post
	if err := sqlx.GetContext(ctx, q, &created, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to execute create post query for owner_id=%d: %w", ownerID, err)
	}

	return &created, nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, q sqlx.QueryerContext, id int64) (*post.Post, error) {
	stmt, args, err := r.builder.
		Select(post.Columns...).
		From(post.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}

	var p post.Post
	if err := sqlx.GetContext(ctx, q, &p, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to get post by id=%d: %w", id, err)
	}

	return &p, nil
}

func (r *PostRepository) GetPosts(ctx context.Context, q sqlx.QueryerContext) ([]post.Post, error) {
	stmt, args, err := r.builder.
		Select(post.Columns...).
		From(post.Table).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get posts query: %w", err)
	}

	posts := []post.Post{}
	if err := sqlx.SelectContext(ctx, q, &posts, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, q sqlx.QueryerContext, id int64, title, content string, ownerID int64) (*post.Post, error) {
	stmt, args, err := r.builder.
		Update(post.Table).
		Set("title", title).
		Set("content", content).
		Set("owner_id", ownerID).
		Where(sq.Eq{"id": id}).
		Suffix(postReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update post query: %w", err)
	}

	var updated post.Post
	if err := sqlx.GetContext(ctx, q, &updated, stmt, args...); err != nil {
		return nil, fmt.Errorf("failed to update post id=%d: %w", id, err)
	}

	return &updated, nil
}

func (r *PostRepository) DeletePost(ctx context.Context, e sqlx.ExecerContext, id int64) (int64, error) {
	stmt, args, err := r.builder.
		Delete(post.Table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete post query: %w", err)
	}

	result, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete post id=%d: %w", id, err)
	}

	return result.RowsAffected()
}

// DeletePostsByOwner removes every post owned by ownerID. Deleting an account
// calls this in the same unit-of-work, so the cascade holds even on stores
// that do not enforce ON DELETE CASCADE.
func (r *PostRepository) DeletePostsByOwner(ctx context.Context, e sqlx.ExecerContext, ownerID int64) (int64, error) {
	stmt, args, err := r.builder.
		Delete(post.Table).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete posts query: %w", err)
	}

	result, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts for owner_id=%d: %w", ownerID, err)
	}

	return result.RowsAffected()
}
