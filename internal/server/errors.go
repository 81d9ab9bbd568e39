package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kpauljoseph/printcards/internal/generator"
	"github.com/kpauljoseph/printcards/internal/layout"
	"github.com/kpauljoseph/printcards/internal/loader"
)

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

// writeError maps an error onto a status code and JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		body   = errorResponse{Error: err.Error()}
		verrs  layout.ValidationErrors
	)

	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		body.Error = layout.ErrInvalidLayoutConfiguration.Error()
		for _, e := range verrs {
			body.Fields = append(body.Fields, fieldError{Field: e.Field, Reason: e.Reason})
		}
	case errors.Is(err, loader.ErrNoHeader), errors.Is(err, loader.ErrMissingColumns):
		status = http.StatusBadRequest
	case errors.Is(err, generator.ErrNoRecords):
		status = http.StatusUnprocessableEntity
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	default:
		s.logger.Warn("Request failed: %v", err)
	}

	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
