// Package httpapi is the HTTP boundary of the notes server: routing,
// request decoding/validation and the mapping of service errors to status
// codes. All authorization decisions live in the permissions package.
package httpapi

import (
	"errors"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jojiiikol/notes-backend/internal/common"
	"github.com/jojiiikol/notes-backend/internal/logging"
	"github.com/jojiiikol/notes-backend/internal/server/auth"
	"github.com/jojiiikol/notes-backend/internal/server/metrics"
	"github.com/jojiiikol/notes-backend/internal/server/notes"
	"github.com/jojiiikol/notes-backend/internal/server/users"
)

type Server struct {
	logger   logging.Logger
	tokens   *auth.TokenService
	users    *users.Service
	notes    *notes.Service
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewServer(logger logging.Logger, tokens *auth.TokenService, us *users.Service, ns *notes.Service, m *metrics.Metrics) *Server {
	return &Server{
		logger:   logger.With("module", "httpapi"),
		tokens:   tokens,
		users:    us,
		notes:    ns,
		metrics:  m,
		validate: validator.New(),
	}
}

// Router builds the full route tree. Registration, login and user reads are
// open; everything else requires a bearer token.
func (s *Server) Router() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(s.countRequests)

	router.Post("/token", s.handleLogin)

	router.Route("/user", func(r chi.Router) {
		r.Post("/", s.handleRegisterUser)
		r.Get("/", s.handleListUsers)
		r.Get("/{id}", s.handleGetUser)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})
	})

	router.Route("/note", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.handleListAllNotes)
		r.Get("/my", s.handleListOwnNotes)
		r.Post("/", s.handleCreateNote)
		r.Get("/{id}", s.handleGetNote)
		r.Put("/{id}", s.handleUpdateNote)
		r.Delete("/{id}", s.handleDeleteNote)
	})

	router.Method("GET", "/metrics", promhttp.Handler())

	return router
}

// countDenial records a permission denial; other error kinds are not counted.
func (s *Server) countDenial(resource string, err error) {
	if errors.Is(err, common.ErrForbidden) {
		s.metrics.PermissionDenials.WithLabelValues(resource).Inc()
	}
}
