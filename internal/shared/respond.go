package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes v as a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

// RespondError maps the error taxonomy onto HTTP statuses: validation
// failures are 422, missing entities 404, everything else 500.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case IsValidation(err):
		RespondJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	case IsNotFound(err):
		RespondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		RespondJSON(w, http.StatusInternalServerError, errorBody{Error: UserSafeMessage(err)})
	}
}
