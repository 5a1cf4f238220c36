// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package server implements the logicsimd HTTP API.
//
package server

import (
	"net/http"
	"time"

	"github.com/db47h/logicsim/editor"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Options configures the router.
//
type Options struct {
	Workspace *editor.Workspace
	Logger    *zap.Logger
	// Metrics, if not nil, records request metrics and serves /metrics.
	Metrics     *metrics.Collector
	CORSOrigins []string
}

type handlers struct {
	ws       *editor.Workspace
	log      *zap.Logger
	validate *validator.Validate
}

// NewRouter returns the API handler.
//
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	h := &handlers{
		ws:       opts.Workspace,
		log:      log,
		validate: validator.New(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(log, opts.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "If-None-Match", "X-Request-ID"},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/examples", h.listExamples)
		r.Post("/evaluate", h.evaluate)

		r.Route("/circuits", func(r chi.Router) {
			r.Post("/", h.createCircuit)
			r.Get("/", h.listCircuits)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getCircuit)
				r.Put("/", h.loadCircuit)
				r.Delete("/", h.deleteCircuit)
				r.Get("/truth-table", h.truthTable)
				r.Post("/nodes", h.addNode)
				r.Delete("/nodes/{nodeID}", h.removeNode)
				r.Post("/nodes/{nodeID}/toggle", h.toggle)
				r.Put("/nodes/{nodeID}/state", h.setState)
				r.Post("/edges", h.connect)
				r.Delete("/edges/{edgeID}", h.disconnect)
			})
		})
	})
	return r
}
