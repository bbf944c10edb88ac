package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/hanvion/healthcost/internal/calculation"
	"go.uber.org/zap"
)

// Options tunes the router middleware
type Options struct {
	// RateLimit is the number of requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit      int
	AllowedOrigins []string
}

// NewRouter wires every endpoint under /api/v1
func NewRouter(engine *calculation.Engine, log *zap.Logger, opts Options) http.Handler {
	h := NewHandler(engine, log)

	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(RequestLogger(h.log))
	router.Use(middleware.Recoverer)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         300,
	}))
	if opts.RateLimit > 0 {
		router.Use(httprate.LimitByIP(opts.RateLimit, time.Second))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ResponseDTO{Message: "route not found"})
	})
	router.Get("/healthz", h.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", h.Health)
		r.Post("/visits/simulate", h.SimulateVisit)
		r.Post("/annual/estimate", h.EstimateAnnual)
		r.Post("/likelihood", h.Likelihood)
		r.Post("/profile", h.Profile)
		r.Post("/scenarios/estimate", h.EstimateScenario)
		r.Post("/scenarios/compare", h.CompareScenario)

		r.Get("/symptoms", h.ListSymptoms)
		r.Get("/symptoms/{name}", h.GetSymptom)
		r.Get("/services", h.ListServices)
		r.Get("/services/{name}", h.GetService)
		r.Get("/medications", h.ListMedications)
		r.Get("/medications/{name}", h.GetMedication)
		r.Get("/procedures", h.SearchProcedures)
		r.Get("/states/{state}", h.GetState)
	})

	return router
}
