package middleware

import (
	"log/slog"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}

// Metrics records request counts and latencies per route template
func Metrics(next http.Handler) http.Handler {
	return middleware.Metrics(next)
}
