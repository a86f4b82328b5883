package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hypotest/internal/errors"
)

const requestLoggerKey = "requestLogger"

// RequestLogger attaches a request-scoped logger carrying a request id and
// logs one line per request with status and latency.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		reqLogger := logger.With().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Set(requestLoggerKey, reqLogger)
		c.Header("X-Request-ID", requestID)

		c.Next()

		reqLogger.Info().
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request completed")
	}
}

func requestLogger(c *gin.Context) zerolog.Logger {
	if v, ok := c.Get(requestLoggerKey); ok {
		if logger, ok := v.(zerolog.Logger); ok {
			return logger
		}
	}
	return zerolog.Nop()
}

// respondError classifies the failure, logs it, and writes the mapped
// status. Unclassified failures never leak their message.
func respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "An unexpected error occurred. Please try again later."
	}

	logger := requestLogger(c)
	logger.Error().
		Str("error_code", errors.GetCode(err)).
		Err(err).
		Msg("request failed")

	c.JSON(status, gin.H{"error": message})
}
