package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/nikhilbhutani/phonemizer/internal/api/handlers"
	"github.com/nikhilbhutani/phonemizer/internal/api/middleware"
	"github.com/nikhilbhutani/phonemizer/internal/auth"
	"github.com/nikhilbhutani/phonemizer/internal/config"
	"github.com/nikhilbhutani/phonemizer/internal/phonemizer"
)

type Router struct {
	mux        *chi.Mux
	cfg        *config.Config
	phonemizer *phonemizer.ESpeak
	jobs       handlers.JobQueue
	redis      *redis.Client
	limiter    *middleware.RateLimiter
}

// NewRouter wires the API. jobs and rdb are nil when the job queue is
// disabled.
func NewRouter(cfg *config.Config, p *phonemizer.ESpeak, jobs handlers.JobQueue, rdb *redis.Client) *Router {
	return &Router{
		mux:        chi.NewRouter(),
		cfg:        cfg,
		phonemizer: p,
		jobs:       jobs,
		redis:      rdb,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.PeerAddr)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	health := handlers.NewHealthHandler(rt.phonemizer, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	phonemizeH := handlers.NewPhonemizeHandler(rt.phonemizer)
	jobH := handlers.NewJobHandler(rt.jobs)

	r.Route("/phonemize", func(r chi.Router) {
		if rt.cfg.RateLimit.RPS > 0 {
			rt.limiter = middleware.NewRateLimiter(rt.cfg.RateLimit.RPS, rt.cfg.RateLimit.Burst)
			r.Use(rt.limiter.Limit)
		}
		if rt.cfg.Auth.JWTSecret != "" {
			r.Use(auth.NewJWTMiddleware(rt.cfg.Auth.JWTSecret).Authenticate)
		}

		r.Post("/", phonemizeH.Phonemize)
		r.Post("/jobs", jobH.Create)
		r.Get("/jobs/{id}", jobH.Get)
	})

	return r
}

// Close releases background resources started by Setup.
func (rt *Router) Close() {
	if rt.limiter != nil {
		rt.limiter.Stop()
	}
}
