package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/contact-manager/internal/api/handlers"
	"github.com/baharkarakas/contact-manager/internal/api/httpx"
	"github.com/baharkarakas/contact-manager/internal/auth"
	"github.com/baharkarakas/contact-manager/internal/config"
	"github.com/baharkarakas/contact-manager/internal/metrics"
	"github.com/baharkarakas/contact-manager/internal/middleware"
)

const (
	maxBodyBytes = 100 << 10

	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

// ContactService is what the router needs from the service layer: the CRUD
// operations plus a store liveness check for /healthz.
type ContactService interface {
	handlers.ContactService
	Ping(ctx context.Context) error
}

func NewRouter(cfg config.Config, log *slog.Logger, cs ContactService) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.RequestLogger(log),
		middleware.Recover,
		middleware.HTTPMetrics,
		middleware.RateLimit(cfg.RateRPS),
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.Use(chimw.RequestSize(maxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// liveness, health & metrics
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running..."))
	})
	r.Get("/healthz", health(cs, log))
	r.Handle("/metrics", metrics.Handler())

	// admin auth is off unless both the signing key and the password hash are configured
	var am *middleware.AuthMiddleware
	if cfg.AuthEnabled() {
		tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, accessTTL, refreshTTL)
		am = middleware.NewAuthMiddleware(tm)
		ah := handlers.NewAuthHandler(tm, cfg.AdminUsername, cfg.AdminPasswordHash)
		r.Post("/api/auth/login", ah.Login)
		r.Post("/api/auth/refresh", ah.Refresh)
	}

	ch := handlers.NewContactHandler(cs, log)
	r.Route("/api/contacts", func(r chi.Router) {
		r.Post("/", ch.Create)

		r.Group(func(r chi.Router) {
			if am != nil {
				r.Use(am.RequireAdmin)
			}
			r.Get("/", ch.List)
			r.Get("/{id}", ch.Get)
			r.Put("/{id}", ch.Update)
			r.Delete("/{id}", ch.Delete)
		})
	})

	return r
}

func health(cs ContactService, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := cs.Ping(ctx); err != nil {
			// driver errors can name hosts; they go to the log only
			log.ErrorContext(r.Context(), "store ping failed",
				"err", err,
				"request_id", middleware.RequestIDFrom(r.Context()),
			)
			httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  "store unreachable",
			})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
