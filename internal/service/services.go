package service

import (
	"github.com/deppfellow/blog-api/internal/repository"
	"github.com/deppfellow/blog-api/internal/server"
)

type Services struct {
	User *UserService
	Post *PostService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	return &Services{
		User: NewUserService(s, repos),
		Post: NewPostService(s, repos),
	}
}
