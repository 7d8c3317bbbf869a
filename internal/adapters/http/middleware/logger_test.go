package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedEcho(buf *bytes.Buffer) *echo.Echo {
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	e := echo.New()
	e.Use(StructuredLogger(logger))
	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(RequestIDKey).(string))
	})
	e.GET("/missing", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})
	return e
}

func decodeLog(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log=%s", buf.String())
	return entry
}

func TestStructuredLogger_GeneratesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	requestID := rec.Header().Get(echo.HeaderXRequestID)
	require.NotEmpty(t, requestID)
	assert.Equal(t, requestID, rec.Body.String())

	entry := decodeLog(t, &buf)
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, requestID, entry["request_id"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestStructuredLogger_PropagatesRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get(echo.HeaderXRequestID))

	entry := decodeLog(t, &buf)
	assert.Equal(t, "client error", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
}

func TestStructuredLogger_HandlerError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := newLoggedEcho(&buf)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entry := decodeLog(t, &buf)
	assert.Equal(t, "request error", entry["msg"])
	assert.Equal(t, float64(http.StatusInternalServerError), entry["status"])
}
