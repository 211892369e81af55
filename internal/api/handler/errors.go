package handler

import (
	"log/slog"
	"net/http"

	"github.com/yx043749/beaver-farm/internal/api/apierr"
	"github.com/yx043749/beaver-farm/internal/api/request"
)

// writeError writes an error response, logging anything that maps to a 5xx
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if request.IsInvalidBody(err) {
		err = apierr.NewInvalidRequestError(err.Error())
	}

	if apierr.Status(err) >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	apierr.WriteError(w, err)
}
