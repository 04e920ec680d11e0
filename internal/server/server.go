// Package server exposes the core operations over HTTP. Handlers stay
// unaware of concrete providers; they only see the directory, the
// catalogs and the services.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusmeet/meetup-service/internal/catalog"
	"github.com/campusmeet/meetup-service/internal/directory"
	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/roster"
	"github.com/campusmeet/meetup-service/internal/service"
)

// Server wires the HTTP handlers with their dependencies. Campus and
// campusRadius are the defaults for place queries when the caller does
// not narrow them.
type Server struct {
	log          *slog.Logger
	students     *directory.StudentDirectory
	places       *catalog.PlaceCatalog
	roster       roster.Provider
	resolver     *service.Resolver
	assembler    *service.Assembler
	campus       models.LatLon
	campusRadius float64
}

// New creates the handler set.
func New(
	log *slog.Logger,
	students *directory.StudentDirectory,
	places *catalog.PlaceCatalog,
	rosterProvider roster.Provider,
	resolver *service.Resolver,
	assembler *service.Assembler,
	campus models.LatLon,
	campusRadius float64,
) *Server {
	return &Server{
		log:          log,
		students:     students,
		places:       places,
		roster:       rosterProvider,
		resolver:     resolver,
		assembler:    assembler,
		campus:       campus,
		campusRadius: campusRadius,
	}
}

// Router builds the chi router with all routes, the health check and the
// metrics endpoint.
func (s *Server) Router(reg *prometheus.Registry) http.Handler {
	router := chi.NewRouter()
	router.Use(s.loggingMiddleware)

	router.Get("/healthz", s.handleHealth)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Post("/students/random", s.handleImportRandom)
	router.Get("/students/{id}", s.handleGetStudent)
	router.Get("/students/{id}/free", s.handleFreeBlock)
	router.Get("/students/{id}/plot", s.handlePlot)

	router.Get("/meetup", s.handleMeetup)
	router.Get("/places", s.handlePlaces)

	return router
}
