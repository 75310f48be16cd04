package user

import (
	"github.com/deppfellow/blog-api/internal/validation"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validation.NewValidator()

// ------------------------------------------------------------

type CreateUserPayload struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,max=100"`
}

func (p *CreateUserPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type GetUsersQuery struct{}

func (q *GetUsersQuery) Validate() error {
	return nil
}

// ------------------------------------------------------------

// GetUserByIDPayload carries only the path id; ids are never validated here
// so an unknown id, including 0, reaches storage and yields 404.
type GetUserByIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *GetUserByIDPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// UpdateUserPayload is a full replace; both fields are required.
type UpdateUserPayload struct {
	ID       int64  `param:"id" json:"-"`
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,max=100"`
}

func (p *UpdateUserPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type DeleteUserPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *DeleteUserPayload) Validate() error {
	return nil
}
