package handler

import (
	"net/http"

	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	Handler
	postService *service.PostService
}

func NewPostHandler(s *server.Server, postService *service.PostService) *PostHandler {
	return &PostHandler{
		Handler:     NewHandler(s),
		postService: postService,
	}
}

func (h *PostHandler) CreatePost() echo.HandlerFunc {
	return Handle[post.CreatePostPayload](
		h.Handler,
		func(c echo.Context, payload *post.CreatePostPayload) (*post.Response, error) {
			return h.postService.CreatePost(c.Request().Context(), payload)
		},
		http.StatusOK,
	)
}

func (h *PostHandler) GetPosts() echo.HandlerFunc {
	return Handle[post.GetPostsQuery](
		h.Handler,
		func(c echo.Context, _ *post.GetPostsQuery) ([]post.Response, error) {
			return h.postService.GetPosts(c.Request().Context())
		},
		http.StatusOK,
	)
}

func (h *PostHandler) GetPostByID() echo.HandlerFunc {
	return Handle[post.GetPostByIDPayload](
		h.Handler,
		func(c echo.Context, payload *post.GetPostByIDPayload) (*post.Response, error) {
			return h.postService.GetPostByID(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
	)
}

func (h *PostHandler) UpdatePost() echo.HandlerFunc {
	return Handle[post.UpdatePostPayload](
		h.Handler,
		func(c echo.Context, payload *post.UpdatePostPayload) (*post.Response, error) {
			return h.postService.UpdatePost(c.Request().Context(), payload)
		},
		http.StatusOK,
	)
}

func (h *PostHandler) DeletePost() echo.HandlerFunc {
	return Handle[post.DeletePostPayload](
		h.Handler,
		func(c echo.Context, payload *post.DeletePostPayload) (*model.DeleteResponse, error) {
			return h.postService.DeletePost(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
	)
}
