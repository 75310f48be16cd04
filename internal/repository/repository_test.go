package repository

import (
	"context"
	"database/sql"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/blog-api/internal/config"
	"github.com/deppfellow/blog-api/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnitOfWork(t *testing.T) *database.UnitOfWork {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.URL = "sqlite://"

	logger := zerolog.New(zerolog.NewTestWriter(t))
	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.EnsureSchema(ctx))

	uow, err := db.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(uow.Release)

	return uow
}

func testBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(database.SQLite.Placeholder)
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	repo := NewUserRepository(testBuilder())

	created, err := repo.CreateUser(ctx, uow, "ann", "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "ann", created.Username)

	_, err = repo.CreateUser(ctx, uow, "bob", "bob@example.com")
	require.NoError(t, err)

	users, err := repo.GetUsers(ctx, uow)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ann", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)

	updated, err := repo.UpdateUser(ctx, uow, created.ID, "anna", "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "anna@example.com", updated.Email)

	fetched, err := repo.GetUserByID(ctx, uow, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna", fetched.Username)

	n, err := repo.DeleteUser(ctx, uow, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetUserByID(ctx, uow, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepository_MissingRows(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	repo := NewUserRepository(testBuilder())

	users, err := repo.GetUsers(ctx, uow)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	_, err = repo.UpdateUser(ctx, uow, 42, "x", "x@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	n, err := repo.DeleteUser(ctx, uow, 42)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	repo := NewUserRepository(testBuilder())

	_, err := repo.CreateUser(ctx, uow, "ann", "ann@example.com")
	require.NoError(t, err)

	_, err = repo.CreateUser(ctx, uow, "ann", "other@example.com")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "=ann", "request values stay out of error text")
}

func TestPostRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	users := NewUserRepository(testBuilder())
	posts := NewPostRepository(testBuilder())

	owner, err := users.CreateUser(ctx, uow, "ann", "ann@example.com")
	require.NoError(t, err)
	other, err := users.CreateUser(ctx, uow, "bob", "bob@example.com")
	require.NoError(t, err)

	created, err := posts.CreatePost(ctx, uow, "Hello", "World", owner.ID)
	require.NoError(t, err)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, owner.ID, *created.OwnerID)

	updated, err := posts.UpdatePost(ctx, uow, created.ID, "Hi", "There", other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi", updated.Title)
	assert.Equal(t, other.ID, *updated.OwnerID)

	list, err := posts.GetPosts(ctx, uow)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "There", list[0].Content)

	n, err := posts.DeletePost(ctx, uow, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = posts.GetPostByID(ctx, uow, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPostRepository_UnknownOwnerViolatesForeignKey(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	posts := NewPostRepository(testBuilder())

	_, err := posts.CreatePost(ctx, uow, "Hello", "World", 999)
	assert.Error(t, err)
}

func TestPostRepository_DeletePostsByOwner(t *testing.T) {
	ctx := context.Background()
	uow := newTestUnitOfWork(t)
	users := NewUserRepository(testBuilder())
	posts := NewPostRepository(testBuilder())

	ann, err := users.CreateUser(ctx, uow, "ann", "ann@example.com")
	require.NoError(t, err)
	bob, err := users.CreateUser(ctx, uow, "bob", "bob@example.com")
	require.NoError(t, err)

	for _, title := range []string{"a", "b"} {
		_, err = posts.CreatePost(ctx, uow, title, "c", ann.ID)
		require.NoError(t, err)
	}
	_, err = posts.CreatePost(ctx, uow, "keep", "c", bob.ID)
	require.NoError(t, err)

	n, err := posts.DeletePostsByOwner(ctx, uow, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := posts.GetPosts(ctx, uow)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "keep", left[0].Title)
}
