// Package server exposes the session store and its supporting surfaces
// over HTTP for the dashboard single-page application.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/carebridge/go-hospital-admin/dashboard"
	"github.com/carebridge/go-hospital-admin/internal/config"
	"github.com/carebridge/go-hospital-admin/masters"
	"github.com/carebridge/go-hospital-admin/session"
	"github.com/carebridge/go-hospital-admin/users"
)

// Server routes dashboard traffic to the session manager and the
// master-data registries.
type Server struct {
	router   chi.Router
	cfg      *config.Config
	manager  *session.Manager
	registry *masters.Registry
	dash     *dashboard.Service
	validate *validator.Validate
	log      zerolog.Logger
}

// New wires the HTTP surface. The manager owns all session state; the
// server holds no session logic of its own.
func New(cfg *config.Config, manager *session.Manager, registry *masters.Registry, log zerolog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		manager:  manager,
		registry: registry,
		dash:     dashboard.NewService(registry),
		validate: validator.New(),
		log:      log,
	}
	s.initRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) initRoutes() {
	r := s.router

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(s.requestMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", s.HealthHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Presentation side-channel: per-session stylesheet and branding.
	r.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Get("/theme.css", s.ThemeStylesheetHandler())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.withSession)

		r.Post("/auth/login", s.LoginHandler())
		r.Post("/auth/logout", s.LogoutHandler())
		r.Get("/session", s.SessionHandler())
		r.Get("/branding", s.BrandingHandler())

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)

			r.Put("/session/branch", s.SelectBranchHandler())
			r.Patch("/tenant/theme", s.UpdateThemeHandler())
			r.Get("/dashboard", s.DashboardHandler())

			r.Route("/masters", func(r chi.Router) {
				registerCRUD(r, s, "companies", s.registry.Companies)
				registerCRUD(r, s, "buildings", s.registry.Buildings)
				registerCRUD(r, s, "branches", s.registry.Branches)
				registerCRUD(r, s, "menus", s.registry.Menus)
				registerCRUD(r, s, "roles", s.registry.Roles)
				registerCRUD(r, s, "staff-types", s.registry.StaffTypes)
			})
		})
	})
}

// registerCRUD mounts the standard master-data routes for one
// collection, each guarded by the matching settings permission.
func registerCRUD[T any](r chi.Router, s *Server, name string, col *masters.Collection[T]) {
	base := "/" + name
	r.With(s.requirePermission("settings", users.ActionRead)).
		Get(base, listMasterHandler(s, col))
	r.With(s.requirePermission("settings", users.ActionRead)).
		Get(base+"/{id}", getMasterHandler(s, col))
	r.With(s.requirePermission("settings", users.ActionCreate)).
		Post(base, createMasterHandler(s, col))
	r.With(s.requirePermission("settings", users.ActionUpdate)).
		Put(base+"/{id}", updateMasterHandler(s, col))
	r.With(s.requirePermission("settings", users.ActionDelete)).
		Delete(base+"/{id}", deleteMasterHandler(s, col))
}
