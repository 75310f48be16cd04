package router

import (
	"github.com/deppfellow/blog-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(r *echo.Echo, h *handler.Handlers) {
	users := r.Group("/users")

	users.POST("", h.User.CreateUser())
	users.GET("", h.User.GetUsers())
	users.GET("/:id", h.User.GetUserByID())
	users.PUT("/:id", h.User.UpdateUser())
	users.DELETE("/:id", h.User.DeleteUser())
}

func registerPostRoutes(r *echo.Echo, h *handler.Handlers) {
	posts := r.Group("/posts")

	posts.POST("", h.Post.CreatePost())
	posts.GET("", h.Post.GetPosts())
	posts.GET("/:id", h.Post.GetPostByID())
	posts.PUT("/:id", h.Post.UpdatePost())
	posts.DELETE("/:id", h.Post.DeletePost())
}
