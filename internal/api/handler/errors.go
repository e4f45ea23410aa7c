package handler

import (
	"log/slog"
	"net/http"

	"github.com/mindgrid/mindgrid-server/internal/api/apierr"
)

// WriteError writes an error response, logging anything that will be
// collapsed to the generic internal error so the detail is not lost
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if !apierr.IsClassified(err) {
		logger.Error("unclassified failure", slog.String("error", err.Error()))
	}
	apierr.WriteError(w, err)
}
