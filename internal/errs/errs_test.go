package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)))
}

func TestConstructors(t *testing.T) {
	code := "USER_NOT_FOUND"
	notFound := NewNotFoundError("User not found", false, &code)
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "USER_NOT_FOUND", notFound.Code)
	assert.Equal(t, "User not found", notFound.Error())

	badRequest := NewBadRequestError("Validation failed", true, nil, []FieldError{{Field: "email", Error: "is required"}})
	assert.Equal(t, http.StatusBadRequest, badRequest.Status)
	assert.Equal(t, "BAD_REQUEST", badRequest.Code)
	assert.Len(t, badRequest.Errors, 1)

	internal := NewInternalServerError()
	assert.Equal(t, "INTERNAL_SERVER_ERROR", internal.Code)
	assert.Equal(t, "Internal Server Error", internal.Message)
}

func TestHTTPError_IsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Post not found", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	assert.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}
