package handler

import (
	"net/http"

	"github.com/deppfellow/blog-api/internal/model"
	"github.com/deppfellow/blog-api/internal/model/user"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/deppfellow/blog-api/internal/service"
	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	Handler
	userService *service.UserService
}

func NewUserHandler(s *server.Server, userService *service.UserService) *UserHandler {
	return &UserHandler{
		Handler:     NewHandler(s),
		userService: userService,
	}
}

func (h *UserHandler) CreateUser() echo.HandlerFunc {
	return Handle[user.CreateUserPayload](
		h.Handler,
		func(c echo.Context, payload *user.CreateUserPayload) (*user.Response, error) {
			return h.userService.CreateUser(c.Request().Context(), payload)
		},
		http.StatusOK,
	)
}

func (h *UserHandler) GetUsers() echo.HandlerFunc {
	return Handle[user.GetUsersQuery](
		h.Handler,
		func(c echo.Context, _ *user.GetUsersQuery) ([]user.Response, error) {
			return h.userService.GetUsers(c.Request().Context())
		},
		http.StatusOK,
	)
}

func (h *UserHandler) GetUserByID() echo.HandlerFunc {
	return Handle[user.GetUserByIDPayload](
		h.Handler,
		func(c echo.Context, payload *user.GetUserByIDPayload) (*user.Response, error) {
			return h.userService.GetUserByID(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
	)
}

func (h *UserHandler) UpdateUser() echo.HandlerFunc {
	return Handle[user.UpdateUserPayload](
		h.Handler,
		func(c echo.Context, payload *user.UpdateUserPayload) (*user.Response, error) {
			return h.userService.UpdateUser(c.Request().Context(), payload)
		},
		http.StatusOK,
	)
}

func (h *UserHandler) DeleteUser() echo.HandlerFunc {
	return Handle[user.DeleteUserPayload](
		h.Handler,
		func(c echo.Context, payload *user.DeleteUserPayload) (*model.DeleteResponse, error) {
			return h.userService.DeleteUser(c.Request().Context(), payload.ID)
		},
		http.StatusOK,
	)
}
