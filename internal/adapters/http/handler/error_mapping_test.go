package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/ogurasousui/contratacao-empresa/internal/adapters/http/middleware"
	"github.com/ogurasousui/contratacao-empresa/internal/core/company"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slog.Default を差し替えるため並列実行しない。
func TestWriteError_InternalErrorLogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	svc := &fakeCompanyUseCase{listFn: func(context.Context) ([]*company.Company, error) {
		return nil, errors.New("connection reset")
	}}
	e := echo.New()
	e.Validator = NewRequestValidator()
	e.Use(middleware.StructuredLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	Register(e, NewCompanyHandler(svc), NewEmployeeHandler(&fakeEmployeeUseCase{}), NewHealthHandler(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/empresas", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-500")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeError(t, rec).Message)

	var entry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var candidate map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &candidate), "log=%s", line)
		if candidate["msg"] == "request failed" {
			entry = candidate
		}
	}
	require.NotNil(t, entry, "log=%s", buf.String())
	assert.Equal(t, "req-500", entry["request_id"])
	assert.Equal(t, "/api/empresas", entry["path"])
	assert.Equal(t, "connection reset", entry["error"])
}
