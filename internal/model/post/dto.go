package post

import (
	"github.com/deppfellow/blog-api/internal/validation"
)

var validate = validation.NewValidator()

// ------------------------------------------------------------

// CreatePostPayload requires owner_id to be present. Any value, 0 included,
// is then checked against existing accounts.
type CreatePostPayload struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	OwnerID *int64 `json:"owner_id" validate:"required"`
}

func (p *CreatePostPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type GetPostsQuery struct{}

func (q *GetPostsQuery) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetPostByIDPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *GetPostByIDPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type UpdatePostPayload struct {
	ID      int64  `param:"id" json:"-"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	OwnerID *int64 `json:"owner_id" validate:"required"`
}

func (p *UpdatePostPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type DeletePostPayload struct {
	ID int64 `param:"id" json:"-"`
}

func (p *DeletePostPayload) Validate() error {
	return nil
}
