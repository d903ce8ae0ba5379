package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// StructuredLogging logs each request through slog instead of gin's
// default writer. The /ping probe is skipped to keep logs readable.
func StructuredLogging(logger *slog.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		if param.Path == "/ping" {
			return ""
		}

		requestID := ""
		if param.Keys != nil {
			if id, ok := param.Keys["request_id"]; ok {
				requestID = id.(string)
			}
		}

		logger.Info("http request",
			"request_id", requestID,
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency_ms", param.Latency.Milliseconds(),
			"client_ip", param.ClientIP,
			"error", param.ErrorMessage,
		)

		return ""
	})
}
