package repository

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/deppfellow/blog-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	User *UserRepository
	Post *PostRepository
}

// NewRepositories constructs the repository container.
//
// The statement builder is bound to the placeholder format of the configured
// dialect once, here, and shared read-only by every repository.
func NewRepositories(s *server.Server) *Repositories {
	builder := sq.StatementBuilder.PlaceholderFormat(s.DB.Dialect.Placeholder)

	return &Repositories{
		User: NewUserRepository(builder),
		Post: NewPostRepository(builder),
	}
}
