package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/carebridge/go-hospital-admin/internal/metrics"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/users"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookie carries the device session identifier for browser
// clients; API clients carry the same identifier inside the bearer
// token's sid claim.
const SessionCookie = "hospital_sid"

// withSession resolves (or mints) the device session and attaches its
// handle to the request context. Bearer tokens take precedence over
// the cookie so API clients and the SPA resolve to the same store.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := s.sessionID(r)
		if sid == "" {
			sid = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		handle, err := s.manager.Get(r.Context(), sid)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
		metrics.SessionStoresResident.Set(float64(s.manager.Len()))

		ctx := context.WithValue(r.Context(), sessionContextKey, handle)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) sessionID(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if sid, err := s.parseToken(parts[1]); err == nil {
				return sid
			}
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// sessionHandle returns the handle attached by withSession.
func (s *Server) sessionHandle(r *http.Request) *session.Handle {
	handle, _ := r.Context().Value(sessionContextKey).(*session.Handle)
	return handle
}

// requireAuth rejects requests whose session is not authenticated.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handle := s.sessionHandle(r)
		if handle == nil || !handle.Store.State().IsAuthenticated {
			s.writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePermission enforces the user's module/action permissions.
func (s *Server) requirePermission(module string, action users.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handle := s.sessionHandle(r)
			if handle == nil {
				s.writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			state := handle.Store.State()
			if state.User == nil || !state.User.HasPermission(module, action) {
				s.writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger emits one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// requestMetrics records request latency per chi route pattern.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
