// Package api provides the HTTP server for GuildDay. It exposes the
// daily log, stats, quest, cohort, and check-in endpoints plus a
// secret-gated admin route for quest generation.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guildday/guildday/internal/app/checkin"
	"github.com/guildday/guildday/internal/app/cohort"
	"github.com/guildday/guildday/internal/app/engine"
	"github.com/guildday/guildday/internal/app/questgen"
	"github.com/guildday/guildday/internal/domain"
	"github.com/guildday/guildday/internal/health"
	"github.com/guildday/guildday/internal/infra/sqlite"
)

// Server is the GuildDay HTTP API server.
type Server struct {
	db             *sqlite.DB
	engine         *engine.Engine
	questgen       *questgen.Service
	cohorts        *cohort.Service
	checkins       *checkin.Service
	health         *health.Checker
	version        string
	cronSecret     string
	metricsEnabled bool
}

// NewServer creates a new API server over the wired services.
func NewServer(db *sqlite.DB, eng *engine.Engine, qg *questgen.Service, co *cohort.Service, ci *checkin.Service) *Server {
	return &Server{
		db:       db,
		engine:   eng,
		questgen: qg,
		cohorts:  co,
		checkins: ci,
		version:  "dev",
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCronSecret sets the bearer token required by /api/admin routes.
// Empty means the admin routes reject every request.
func (s *Server) SetCronSecret(secret string) { s.cronSecret = secret }

// SetHealth sets the health checker backing /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetVersion sets the version string reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/log", s.handleSubmitLog)
		r.Get("/logs", s.handleListLogs)
		r.Get("/stats", s.handleStats)
		r.Get("/quests", s.handleQuests)
		r.Post("/join", s.handleJoin)
		r.Post("/invites", s.handleCreateInvite)
		r.Post("/checkin", s.handleCheckin)
		r.Get("/locations", s.handleLocations)
	})

	// Admin routes are cron-triggered, gated by a shared secret
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(s.requireCronSecret)
		r.Post("/generate-daily", s.handleGenerateDaily)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := "ok"
	code := http.StatusOK
	if !s.health.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": s.health.Statuses(),
	})
}

// requireCronSecret rejects requests without the configured bearer token.
func (s *Server) requireCronSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cronSecret == "" || r.Header.Get("Authorization") != "Bearer "+s.cronSecret {
			writeError(w, http.StatusUnauthorized, "invalid or missing admin token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinels onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrStatsNotFound),
		errors.Is(err, domain.ErrCohortNotFound),
		errors.Is(err, domain.ErrInviteNotFound),
		errors.Is(err, domain.ErrLocationNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrInviteInactive),
		errors.Is(err, domain.ErrInviteExpired),
		errors.Is(err, domain.ErrInviteExhausted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
