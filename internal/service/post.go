package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/blog-api/internal/database"
	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/repository"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/rs/zerolog"
)

const (
	msgPostCreateFailed = "Post could not be created."
	msgPostUpdateFailed = "Post could not be updated."
	msgPostDeleteFailed = "Post could not be deleted."
)

type PostService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewPostService(s *server.Server, repos *repository.Repositories) *PostService {
	return &PostService{
		server: s,
		repos:  repos,
	}
}

// ensureOwner returns 404 "Owner not found" when ownerID does not name an account.
func (s *PostService) ensureOwner(ctx context.Context, uow *database.UnitOfWork, ownerID int64) error {
	if _, err := s.repos.User.GetUserByID(ctx, uow, ownerID); err != nil {
		if isNotFound(err) {
			return ownerNotFound()
		}
		return err
	}
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, payload *post.CreatePostPayload) (*post.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	if err := s.ensureOwner(ctx, uow, *payload.OwnerID); err != nil {
		return nil, err
	}

	created, err := s.repos.Post.CreatePost(ctx, uow, payload.Title, payload.Content, *payload.OwnerID)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgPostCreateFailed)
	}

	if err := commit(ctx, uow, msgPostCreateFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("post_id", created.ID).
		Int64("owner_id", *payload.OwnerID).
		Msg("post created")

	return post.NewResponse(created), nil
}

func (s *PostService) GetPosts(ctx context.Context) ([]post.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	posts, err := s.repos.Post.GetPosts(ctx, uow)
	if err != nil {
		return nil, err
	}

	return post.NewResponses(posts), nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*post.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	p, err := s.repos.Post.GetPostByID(ctx, uow, id)
	if err != nil {
		if isNotFound(err) {
			return nil, postNotFound()
		}
		return nil, err
	}

	return post.NewResponse(p), nil
}

// UpdatePost replaces every field of an existing post. The new owner must exist.
func (s *PostService) UpdatePost(ctx context.Context, payload *post.UpdatePostPayload) (*post.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	if _, err := s.repos.Post.GetPostByID(ctx, uow, payload.ID); err != nil {
		if isNotFound(err) {
			return nil, postNotFound()
		}
		return nil, err
	}

	if err := s.ensureOwner(ctx, uow, *payload.OwnerID); err != nil {
		return nil, err
	}

	updated, err := s.repos.Post.UpdatePost(ctx, uow, payload.ID, payload.Title, payload.Content, *payload.OwnerID)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgPostUpdateFailed)
	}

	if err := commit(ctx, uow, msgPostUpdateFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("post_id", updated.ID).
		Msg("post updated")

	return post.NewResponse(updated), nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) (*model.DeleteResponse, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	if _, err := s.repos.Post.GetPostByID(ctx, uow, id); err != nil {
		if isNotFound(err) {
			return nil, postNotFound()
		}
		return nil, err
	}

	n, err := s.repos.Post.DeletePost(ctx, uow, id)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgPostDeleteFailed)
	}
	if n == 0 {
		return nil, abortWrite(ctx, uow, fmt.Errorf("post id=%d vanished before delete", id), msgPostDeleteFailed)
	}

	if err := commit(ctx, uow, msgPostDeleteFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("post_id", id).
		Msg("post deleted")

	return &model.DeleteResponse{Detail: "Post deleted successfully"}, nil
}
