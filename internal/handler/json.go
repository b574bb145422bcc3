package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/habitual/internal/habit"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes. Anything unrecognized is logged
// and reported as a generic failure to do action.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error, action string) {
	var ve *habit.ValidationError
	var nf *habit.NotFoundError
	var sc *habit.StateConflictError

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": nf.Error()})
	case errors.As(err, &sc):
		writeJSON(w, http.StatusConflict, map[string]string{"error": sc.Reason})
	default:
		logger.Error(action, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to " + action})
	}
}
