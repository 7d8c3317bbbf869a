// Package middleware は HTTP サーバー共通のミドルウェアを提供します。
package middleware

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDKey は echo.Context に保存するリクエスト ID のキーです。
const RequestIDKey = "requestID"

// StructuredLogger はリクエストごとに X-Request-ID を払い出し、アクセスログを slog で出力します。
// クライアントが X-Request-ID を指定した場合はその値を引き継ぎます。
func StructuredLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			err := next(c)
			if err != nil {
				// echo の HTTPErrorHandler に書き込ませてからステータスを確定させる
				c.Error(err)
			}

			status := c.Response().Status
			attrs := []slog.Attr{
				slog.String("request_id", requestID),
				slog.String("method", req.Method),
				slog.String("path", req.URL.Path),
				slog.String("route", c.Path()),
				slog.Int("status", status),
				slog.Duration("latency", time.Since(start)),
				slog.String("ip", c.RealIP()),
				slog.String("user_agent", req.UserAgent()),
			}

			ctx := req.Context()
			switch {
			case err != nil:
				attrs = append(attrs, slog.String("error", err.Error()))
				logger.LogAttrs(ctx, slog.LevelError, "request error", attrs...)
			case status >= 500:
				logger.LogAttrs(ctx, slog.LevelError, "server error", attrs...)
			case status >= 400:
				logger.LogAttrs(ctx, slog.LevelWarn, "client error", attrs...)
			default:
				logger.LogAttrs(ctx, slog.LevelInfo, "request completed", attrs...)
			}

			return nil
		}
	}
}
