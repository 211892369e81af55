package middleware

import (
	"log/slog"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/middleware"
)

// Recovery creates panic recovery middleware for the web interface
// Returns an HTML error page on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Beaver Farm - Error</title></head>
<body>
<h1>Internal Server Error</h1>
<p>Something went wrong on the farm. Please try again later.</p>
<p><a href="/main">Back to the farm</a></p>
</body>
</html>`))
}
