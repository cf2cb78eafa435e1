package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/KirkDiggler/rollcall/internal/common/clock"
	attendanceService "github.com/KirkDiggler/rollcall/internal/services/attendance"
	identityService "github.com/KirkDiggler/rollcall/internal/services/identity"
	sessionService "github.com/KirkDiggler/rollcall/internal/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the services behind the HTTP API
type Config struct {
	IdentityService   identityService.Service
	SessionService    sessionService.Service
	AttendanceService attendanceService.Service
	Clock             clock.Clock

	// Optional; enables GET /sessions/{sessionId}/events
	Events EventSource
}

type Server struct {
	identity   identityService.Service
	sessions   sessionService.Service
	attendance attendanceService.Service
	clock      clock.Clock
	events     EventSource
	validate   *validator.Validate
}

func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.IdentityService == nil {
		return nil, errors.New("identity service cannot be nil")
	}

	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}

	if cfg.AttendanceService == nil {
		return nil, errors.New("attendance service cannot be nil")
	}

	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	// report json names in validation errors
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Server{
		identity:   cfg.IdentityService,
		sessions:   cfg.SessionService,
		attendance: cfg.AttendanceService,
		clock:      cfg.Clock,
		events:     cfg.Events,
		validate:   validate,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.With(requireRole(roleTeacher)).Post("/sessions", s.handleCreateSession)
		r.With(requireRole(roleTeacher)).Get("/sessions", s.handleListSessions)
		r.With(requireRole(roleTeacher)).Get("/sessions/active", s.handleGetActiveSession)
		r.With(requireRole(roleTeacher)).Get("/sessions/{sessionId}/records", s.handleListSessionRecords)
		if s.events != nil {
			r.With(requireRole(roleTeacher)).Get("/sessions/{sessionId}/events", s.handleSessionEvents)
		}

		r.With(requireRole(roleStudent)).Post("/attendance", s.handleSign)
		r.With(requireRole(roleStudent)).Get("/attendance", s.handleListMyRecords)
	})

	return r
}
