package server

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/session"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps known domain errors to deterministic HTTP
// codes. Every credential-resolution failure collapses to one generic
// message so the response does not leak which part of the lookup
// failed.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrTenantNotFound),
		errors.Is(err, session.ErrTenantNoBranches):
		s.writeError(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, session.ErrLoginInProgress):
		s.writeError(w, http.StatusConflict, "a login is already in progress")
	case errors.Is(err, session.ErrNotAuthenticated):
		s.writeError(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, session.ErrForeignBranch):
		s.writeError(w, http.StatusUnprocessableEntity, "branch does not belong to the active tenant")
	case errors.Is(err, masters.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "not found")
	default:
		s.log.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeAndValidate decodes a JSON body and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(err, "malformed request body")
	}
	if err := s.validate.Struct(v); err != nil {
		return err
	}
	return nil
}
