package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/carebridge/go-hospital-admin/internal/metrics"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/tenants"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
	session.State
}

// LoginHandler authenticates the device session.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		handle := s.sessionHandle(r)
		if err := handle.Store.Login(r.Context(), req.Email, req.Password); err != nil {
			if errors.Is(err, session.ErrLoginInProgress) {
				metrics.LoginsTotal.WithLabelValues("conflict").Inc()
			} else {
				metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			}
			s.writeDomainError(w, r, err)
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()

		state := handle.Store.State()
		token, err := s.issueToken(handle.ID, state.User)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, loginResponse{Token: token, State: state})
	}
}

// LogoutHandler clears the session and drops its resident store.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		handle.Store.Logout(r.Context())
		s.manager.Drop(handle.ID)
		s.writeJSON(w, http.StatusNoContent, nil)
	}
}

// SessionHandler returns the current session aggregate.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		s.writeJSON(w, http.StatusOK, handle.Store.State())
	}
}

type selectBranchRequest struct {
	BranchID string `json:"branchId" validate:"required"`
}

// SelectBranchHandler switches the session's active branch.
func (s *Server) SelectBranchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectBranchRequest
		if err := s.decodeAndValidate(r, &req); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		handle := s.sessionHandle(r)
		if err := handle.Store.SelectBranch(r.Context(), tenants.Branch{ID: req.BranchID}); err != nil {
			metrics.BranchSelectionsTotal.WithLabelValues("rejected").Inc()
			s.writeDomainError(w, r, err)
			return
		}
		metrics.BranchSelectionsTotal.WithLabelValues("applied").Inc()
		s.writeJSON(w, http.StatusOK, handle.Store.State())
	}
}

// UpdateThemeHandler shallow-merges a partial theme into the active
// tenant's theme.
func (s *Server) UpdateThemeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch session.ThemePatch
		if err := s.decodeAndValidate(r, &patch); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		handle := s.sessionHandle(r)
		handle.Store.UpdateTheme(patch)
		metrics.ThemeUpdatesTotal.Inc()
		s.writeJSON(w, http.StatusOK, handle.Store.State())
	}
}

// ThemeStylesheetHandler serves the session's colour variables and
// custom CSS to the dashboard shell.
func (s *Server) ThemeStylesheetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(handle.Document.Stylesheet()))
	}
}

// BrandingHandler serves the session's title, brand, and favicon.
func (s *Server) BrandingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		s.writeJSON(w, http.StatusOK, handle.Document.Branding())
	}
}

// DashboardHandler returns the overview for the selected branch.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		overview, err := s.dash.Overview(r.Context(), handle.Store.State().SelectedBranch)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, overview)
	}
}

// HealthHandler reports liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
