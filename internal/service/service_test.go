package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/model/user"
	"github.com/deppfellow/blog-api/internal/repository"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func newTestServices(t *testing.T) (*server.Server, *Services) {
	t.Helper()

	s := testutil.NewTestServer(t)
	return s, NewServices(s, repository.NewRepositories(s))
}

func countRows(t *testing.T, s *server.Server, table string) int {
	t.Helper()

	var n int
	require.NoError(t, s.DB.Pool.GetContext(context.Background(), &n, "SELECT COUNT(*) FROM "+table))
	return n
}

func requireHTTPError(t *testing.T, err error, status int, code, message string) {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, code, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestAbortWrite_RollsBack(t *testing.T) {
	s, _ := newTestServices(t)
	ctx := context.Background()

	uow, err := s.DB.Begin(ctx)
	require.NoError(t, err)
	defer uow.Release()

	_, err = uow.ExecContext(ctx, "INSERT INTO users (username, email) VALUES ('ann', 'ann@example.com')")
	require.NoError(t, err)

	err = abortWrite(ctx, uow, errors.New("boom"), "User could not be created.")
	requireHTTPError(t, err, http.StatusBadRequest, "BAD_REQUEST", "User could not be created.")

	assert.Zero(t, countRows(t, s, "users"))
}

func TestUserService_CreateDuplicate(t *testing.T) {
	s, services := newTestServices(t)
	ctx := context.Background()

	_, err := services.User.CreateUser(ctx, &user.CreateUserPayload{Username: "ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = services.User.CreateUser(ctx, &user.CreateUserPayload{Username: "ann", Email: "x@example.com"})
	requireHTTPError(t, err, http.StatusBadRequest, "USER_ALREADY_EXISTS", "User could not be created.")

	assert.Equal(t, 1, countRows(t, s, "users"))
}

func TestUserService_DeleteCascadesPosts(t *testing.T) {
	s, services := newTestServices(t)
	ctx := context.Background()

	ann, err := services.User.CreateUser(ctx, &user.CreateUserPayload{Username: "ann", Email: "ann@example.com"})
	require.NoError(t, err)

	for range 3 {
		_, err = services.Post.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Content: "c", OwnerID: int64Ptr(ann.ID)})
		require.NoError(t, err)
	}

	res, err := services.User.DeleteUser(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", res.Detail)

	assert.Zero(t, countRows(t, s, "posts"))
	assert.Zero(t, countRows(t, s, "users"))
}

func TestPostService_OwnerChecks(t *testing.T) {
	s, services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Post.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Content: "c", OwnerID: int64Ptr(7)})
	requireHTTPError(t, err, http.StatusNotFound, "OWNER_NOT_FOUND", "Owner not found")
	assert.Zero(t, countRows(t, s, "posts"))

	ann, err := services.User.CreateUser(ctx, &user.CreateUserPayload{Username: "ann", Email: "ann@example.com"})
	require.NoError(t, err)
	created, err := services.Post.CreatePost(ctx, &post.CreatePostPayload{Title: "t", Content: "c", OwnerID: int64Ptr(ann.ID)})
	require.NoError(t, err)

	_, err = services.Post.UpdatePost(ctx, &post.UpdatePostPayload{ID: created.ID, Title: "n", Content: "n", OwnerID: int64Ptr(7)})
	requireHTTPError(t, err, http.StatusNotFound, "OWNER_NOT_FOUND", "Owner not found")

	_, err = services.Post.UpdatePost(ctx, &post.UpdatePostPayload{ID: 99, Title: "n", Content: "n", OwnerID: int64Ptr(ann.ID)})
	requireHTTPError(t, err, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")

	got, err := services.Post.GetPostByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestGetters_NotFound(t *testing.T) {
	_, services := newTestServices(t)
	ctx := context.Background()

	_, err := services.User.GetUserByID(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "USER_NOT_FOUND", "User not found")

	_, err = services.Post.DeletePost(ctx, 1)
	requireHTTPError(t, err, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")

	users, err := services.User.GetUsers(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)
}

func TestPostService_ZeroOwnerIsNotFound(t *testing.T) {
	s, services := newTestServices(t)

	_, err := services.Post.CreatePost(context.Background(), &post.CreatePostPayload{Title: "t", Content: "c", OwnerID: int64Ptr(0)})
	requireHTTPError(t, err, http.StatusNotFound, "OWNER_NOT_FOUND", "Owner not found")
	assert.Zero(t, countRows(t, s, "posts"))
}
