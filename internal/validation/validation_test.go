package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virilis/backend/internal/errs"
)

type goalRequest struct {
	UserID      int64    `param:"userId" json:"-"`
	Metric      string   `json:"metric" validate:"required"`
	TargetValue *float64 `json:"targetValue" validate:"required,gte=0"`
}

func (r *goalRequest) Validate() error {
	return Struct(r)
}

func newContext(body string, names, values []string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c
}

func badRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	t.Run("binds path and body", func(t *testing.T) {
		var req goalRequest
		c := newContext(`{"metric":"count","targetValue":0}`, []string{"userId"}, []string{"7"})

		require.NoError(t, BindAndValidate(c, &req))
		assert.Equal(t, int64(7), req.UserID)
		assert.Equal(t, "count", req.Metric)
		require.NotNil(t, req.TargetValue)
		assert.Zero(t, *req.TargetValue)
	})

	t.Run("non numeric path id", func(t *testing.T) {
		c := newContext(`{}`, []string{"userId"}, []string{"abc"})

		httpErr := badRequest(t, BindAndValidate(c, &goalRequest{}))
		assert.Equal(t, "Invalid user ID", httpErr.Message)
	})

	t.Run("body cannot override path id", func(t *testing.T) {
		var req goalRequest
		c := newContext(`{"metric":"count","targetValue":1,"userId":99}`, []string{"userId"}, []string{"7"})

		require.NoError(t, BindAndValidate(c, &req))
		assert.Equal(t, int64(7), req.UserID)
	})

	t.Run("malformed json", func(t *testing.T) {
		c := newContext(`{"metric":`, []string{"userId"}, []string{"7"})

		httpErr := badRequest(t, BindAndValidate(c, &goalRequest{}))
		assert.Equal(t, "Invalid request body", httpErr.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		c := newContext(`{}`, []string{"userId"}, []string{"7"})

		httpErr := badRequest(t, BindAndValidate(c, &goalRequest{}))
		assert.Equal(t, "Missing required fields", httpErr.Message)
		assert.ElementsMatch(t, []errs.FieldError{
			{Field: "metric", Error: "is required"},
			{Field: "targetValue", Error: "is required"},
		}, httpErr.Errors)
	})

	t.Run("rule violation", func(t *testing.T) {
		c := newContext(`{"metric":"count","targetValue":-1}`, []string{"userId"}, []string{"7"})

		httpErr := badRequest(t, BindAndValidate(c, &goalRequest{}))
		assert.Equal(t, "Validation failed", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "targetValue", httpErr.Errors[0].Field)
	})
}

type contentRequest struct {
	PostID  int64  `param:"postId" json:"-"`
	UserID  int64  `param:"userId" json:"-"`
	Content string `json:"content" validate:"required"`
}

func (r *contentRequest) Validate() error {
	return Struct(r)
}

func (r *contentRequest) RequiredMessage() string { return "Content is required" }

func TestBindAndValidateRouteMessages(t *testing.T) {
	t.Run("every id is named", func(t *testing.T) {
		c := newContext(`{"content":"hi"}`, []string{"postId", "userId"}, []string{"1", "me"})

		httpErr := badRequest(t, BindAndValidate(c, &contentRequest{}))
		assert.Equal(t, "Invalid post ID or user ID", httpErr.Message)
	})

	t.Run("request supplies the missing field message", func(t *testing.T) {
		c := newContext(`{}`, []string{"postId", "userId"}, []string{"1", "2"})

		httpErr := badRequest(t, BindAndValidate(c, &contentRequest{}))
		assert.Equal(t, "Content is required", httpErr.Message)
		assert.Equal(t, []errs.FieldError{{Field: "content", Error: "is required"}}, httpErr.Errors)
	})
}

type customRequest struct{}

func (customRequest) Validate() error {
	return CustomValidationErrors{{Field: "content", Message: "Content is required"}}
}

func TestCustomValidationErrors(t *testing.T) {
	httpErr := badRequest(t, BindAndValidate(newContext(`{}`, nil, nil), &customRequest{}))

	assert.Equal(t, []errs.FieldError{{Field: "content", Error: "Content is required"}}, httpErr.Errors)
}

func TestParamLabel(t *testing.T) {
	assert.Equal(t, "user ID", paramLabel("userId"))
	assert.Equal(t, "recommendation ID", paramLabel("recommendationId"))
	assert.Equal(t, "id", paramLabel("id"))
}
