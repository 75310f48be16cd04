package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/user"
	"github.com/deppfellow/blog-api/internal/repository"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/rs/zerolog"
)

const (
	msgUserCreateFailed = "User could not be created."
	msgUserUpdateFailed = "User could not be updated."
	msgUserDeleteFailed = "User could not be deleted."
)

type UserService struct {
	server *server.Server
	repos  *repository.Repositories
}

func NewUserService(s *server.Server, repos *repository.Repositories) *UserService {
	return &UserService{
		server: s,
		repos:  repos,
	}
}

func (s *UserService) CreateUser(ctx context.Context, payload *user.CreateUserPayload) (*user.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	created, err := s.repos.User.CreateUser(ctx, uow, payload.Username, payload.Email)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgUserCreateFailed)
	}

	if err := commit(ctx, uow, msgUserCreateFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("user_id", created.ID).
		Msg("user created")

	return user.NewResponse(created), nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]user.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	users, err := s.repos.User.GetUsers(ctx, uow)
	if err != nil {
		return nil, err
	}

	return user.NewResponses(users), nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*user.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	u, err := s.repos.User.GetUserByID(ctx, uow, id)
	if err != nil {
		if isNotFound(err) {
			return nil, userNotFound()
		}
		return nil, err
	}

	return user.NewResponse(u), nil
}

// UpdateUser replaces both fields of an existing account.
func (s *UserService) UpdateUser(ctx context.Context, payload *user.UpdateUserPayload) (*user.Response, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	if _, err := s.repos.User.GetUserByID(ctx, uow, payload.ID); err != nil {
		if isNotFound(err) {
			return nil, userNotFound()
		}
		return nil, err
	}

	updated, err := s.repos.User.UpdateUser(ctx, uow, payload.ID, payload.Username, payload.Email)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgUserUpdateFailed)
	}

	if err := commit(ctx, uow, msgUserUpdateFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("user_id", updated.ID).
		Msg("user updated")

	return user.NewResponse(updated), nil
}

// DeleteUser removes the account and every post it owns in one unit-of-work.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*model.DeleteResponse, error) {
	uow, err := s.server.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Release()

	if _, err := s.repos.User.GetUserByID(ctx, uow, id); err != nil {
		if isNotFound(err) {
			return nil, userNotFound()
		}
		return nil, err
	}

	removedPosts, err := s.repos.Post.DeletePostsByOwner(ctx, uow, id)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgUserDeleteFailed)
	}

	n, err := s.repos.User.DeleteUser(ctx, uow, id)
	if err != nil {
		return nil, abortWrite(ctx, uow, err, msgUserDeleteFailed)
	}
	if n == 0 {
		return nil, abortWrite(ctx, uow, fmt.Errorf("user id=%d vanished before delete", id), msgUserDeleteFailed)
	}

	if err := commit(ctx, uow, msgUserDeleteFailed); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("user_id", id).
		Int64("posts_deleted", removedPosts).
		Msg("user deleted")

	return &model.DeleteResponse{Detail: "User deleted successfully"}, nil
}
