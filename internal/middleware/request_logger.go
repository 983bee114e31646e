package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sjperalta/propostas-api/pkg/logger"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// skipLogPaths are polled by monitors and not worth a log line
var skipLogPaths = map[string]bool{
	"/api/v1/health": true,
}

// RequestLogger writes one structured line per request. The level follows the
// status: 5xx error, 4xx warn, anything else info.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		path := c.Request.URL.Path
		if skipLogPaths[path] {
			return
		}
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.String("ip", c.ClientIP()),
			slog.Duration("latency", time.Since(start)),
		}
		if identity := GetIdentity(c); identity != nil {
			attrs = append(attrs, slog.String("login", identity.Login))
		}
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			attrs = append(attrs, slog.String("error", msg))
		}

		switch {
		case status >= 500:
			logger.Log.ErrorContext(c.Request.Context(), "Request failed", attrs...)
		case status >= 400:
			logger.Log.WarnContext(c.Request.Context(), "Request rejected", attrs...)
		default:
			logger.Log.InfoContext(c.Request.Context(), "Request served", attrs...)
		}
	}
}
