package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"tourops/internal/domain"
)

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// respondErr maps domain errors onto the status taxonomy. Unknown
// errors are logged server-side and surfaced as a generic 500; the raw
// message never reaches the caller.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", "resource already exists")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "internal error")
	}
}

// decodeJSON parses a request body into dst; a malformed body or a bad
// field value is a validation failure.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if domain.IsValidation(err) {
			return err
		}
		return domain.Invalidf("invalid JSON body")
	}
	return nil
}
