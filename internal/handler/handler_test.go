package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virilis/backend/internal/config"
	"github.com/virilis/backend/internal/server"
	"github.com/virilis/backend/internal/validation"
)

type echoRequest struct {
	ID   int64  `param:"id" json:"-"`
	Text string `json:"text" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestHandleWritesEnvelope(t *testing.T) {
	e := echo.New()
	e.POST("/items/:id", Handle(func(c echo.Context, req *echoRequest) (map[string]any, error) {
		return map[string]any{"id": req.ID, "text": req.Text}, nil
	}, http.StatusCreated, &echoRequest{}, "Item created successfully!"))

	req := httptest.NewRequest(http.MethodPost, "/items/5", strings.NewReader(`{"text":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Item created successfully!","data":{"id":5,"text":"hi"}}`, rec.Body.String())
}

func TestHandleUsesFreshRequestPerCall(t *testing.T) {
	proto := &echoRequest{}
	seen := make(chan *echoRequest, 2)

	h := Handle(func(c echo.Context, req *echoRequest) (string, error) {
		seen <- req
		return req.Text, nil
	}, http.StatusOK, proto, "ok")

	e := echo.New()
	e.POST("/items/:id", h)

	var wg sync.WaitGroup
	for _, text := range []string{"a", "b"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/items/1", strings.NewReader(`{"text":"`+text+`"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			e.ServeHTTP(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()
	close(seen)

	var got []*echoRequest
	for r := range seen {
		got = append(got, r)
	}
	require.Len(t, got, 2)
	assert.NotSame(t, got[0], got[1])
	assert.NotSame(t, proto, got[0])
	assert.Empty(t, proto.Text)
}

func TestHandleReturnsErrors(t *testing.T) {
	boom := errors.New("boom")

	h := Handle(func(c echo.Context, req *echoRequest) (string, error) {
		return "", boom
	}, http.StatusOK, &echoRequest{}, "ok")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"text":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.ErrorIs(t, h(c), boom)
}

func TestHealthHandler(t *testing.T) {
	var raw string
	check := func(checks ...healthCheck) (int, map[string]any) {
		h := NewHealthHandler(testServer())
		h.checks = checks

		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
		require.NoError(t, h.CheckHealth(c))

		raw = rec.Body.String()
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body
	}

	healthy := func(context.Context) error { return nil }
	failing := func(context.Context) error {
		return errors.New("failed to connect to `host=db.internal user=virilis`: connection refused")
	}

	t.Run("all healthy", func(t *testing.T) {
		status, body := check(healthCheck{"database", healthy}, healthCheck{"redis", healthy})
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("redis failure makes the service unhealthy", func(t *testing.T) {
		status, body := check(healthCheck{"database", healthy}, healthCheck{"redis", failing})
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body["status"])

		checks := body["checks"].(map[string]any)
		assert.Equal(t, "unhealthy", checks["redis"].(map[string]any)["status"])
		assert.Equal(t, "healthy", checks["database"].(map[string]any)["status"])
	})

	t.Run("failure details stay out of the response", func(t *testing.T) {
		status, _ := check(healthCheck{"database", failing})
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.NotContains(t, raw, "db.internal")
		assert.NotContains(t, raw, "connection refused")
	})

	t.Run("configured checks only", func(t *testing.T) {
		s := testServer()
		s.Config.Observability.HealthChecks.Checks = []string{"redis"}

		h := NewHealthHandler(s)
		require.Len(t, h.checks, 1)
		assert.Equal(t, "redis", h.checks[0].name)
	})
}

func TestNewRequest(t *testing.T) {
	proto := &echoRequest{Text: "keep"}
	fresh := newRequest(proto)

	assert.NotSame(t, proto, fresh)
	assert.Empty(t, fresh.Text)
}
