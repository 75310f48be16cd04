package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testValidator = NewValidator()

type samplePayload struct {
	ID      int64  `param:"id" json:"-"`
	Title   string `json:"title" validate:"required,max=5"`
	OwnerID int64  `json:"owner_id" validate:"required"`
}

func (p *samplePayload) Validate() error {
	return testValidator.Struct(p)
}

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBindAndValidate_Success(t *testing.T) {
	c, _ := newContext(http.MethodPut, `{"title":"hello","owner_id":3,"id":99}`)
	c.SetParamNames("id")
	c.SetParamValues("7")

	payload := &samplePayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, int64(7), payload.ID, "body must not override the path id")
	assert.Equal(t, "hello", payload.Title)
	assert.Equal(t, int64(3), payload.OwnerID)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"title":"too long title"}`)

	err := BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "title", Error: "must not exceed 5 characters"},
		{Field: "owner_id", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	c, _ := newContext(http.MethodPost, `{"title":`)

	err := BindAndValidate(c, &samplePayload{})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid request payload", httpErr.Message)
}

func TestBindAndValidate_NonNumericID(t *testing.T) {
	c, _ := newContext(http.MethodGet, "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := BindAndValidate(c, &samplePayload{Title: "x", OwnerID: 1})

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}
