package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/campusmeet/meetup-service/internal/catalog"
	"github.com/campusmeet/meetup-service/internal/config"
	"github.com/campusmeet/meetup-service/internal/directory"
	"github.com/campusmeet/meetup-service/internal/metrics"
	"github.com/campusmeet/meetup-service/internal/places"
	"github.com/campusmeet/meetup-service/internal/roster"
	"github.com/campusmeet/meetup-service/internal/routing"
	"github.com/campusmeet/meetup-service/internal/server"
	"github.com/campusmeet/meetup-service/internal/service"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// The built-in student lets the API answer meetup queries before any
// roster records are imported.
const selfStudentID = 999999

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Load the built-in campus dataset and register the default student.
	courses := catalog.NewCourseCatalog()
	if err := catalog.SeedCourses(courses); err != nil {
		log.Fatalf("Failed to seed course catalog: %v", err)
	}

	students := directory.NewStudentDirectory(courses)
	if err := students.SetDayBounds(cfg.DayStart, cfg.DayEnd); err != nil {
		log.Fatalf("Failed to apply day bounds: %v", err)
	}
	if err := seedSelf(students); err != nil {
		log.Fatalf("Failed to register built-in student: %v", err)
	}

	// Create the venue-search provider using the factory pattern, so the
	// concrete API (FourSquare, Google Places) is a runtime choice.
	placeProvider, err := places.NewProvider(places.ProviderConfig{
		Type:         places.ProviderType(cfg.PlaceProvider),
		APIKey:       cfg.PlaceAPIKey,
		ClientID:     cfg.PlaceClientID,
		ClientSecret: cfg.PlaceClientSecret,
		RateLimit:    cfg.PlaceRateLimit,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("Failed to create venue-search provider: %v", err)
	}
	logger.InfoContext(ctx, "Venue-search provider initialized", "type", cfg.PlaceProvider)

	routeProvider, err := routing.NewProvider(routing.ProviderConfig{
		Type:    routing.ProviderType(cfg.RoutingProvider),
		APIKey:  cfg.RoutingAPIKey,
		BaseURL: cfg.RoutingBaseURL,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("Failed to create routing provider: %v", err)
	}
	logger.InfoContext(ctx, "Routing provider initialized", "type", cfg.RoutingProvider)

	rosterProvider := roster.NewHTTPProvider(cfg.RosterURL, logger)

	// Fill the place catalog once at startup. A failure is not fatal:
	// meetup queries simply return empty candidate sets until the
	// provider recovers.
	placeCatalog := catalog.NewPlaceCatalog()
	loader := service.NewPlaceLoader(logger, placeProvider, placeCatalog, appMetrics)
	loadCtx, cancelLoad := context.WithTimeout(ctx, 30*time.Second)
	cached, err := loader.Populate(loadCtx, cfg.Campus, cfg.CampusRadius, "")
	cancelLoad()
	if err != nil {
		logger.ErrorContext(ctx, "Initial place load failed", "error", err)
	} else {
		logger.InfoContext(ctx, "Place catalog populated", "places", cached)
	}

	resolver := service.NewResolver(logger, placeCatalog, appMetrics)
	assembler := service.NewAssembler(logger, routeProvider, appMetrics, cfg.Workers)

	api := server.New(
		logger, students, placeCatalog, rosterProvider, resolver, assembler,
		cfg.Campus, float64(cfg.CampusRadius),
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.Router(reg),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	// Log graceful shutdown completion.
	logger.Info("Application stopped gracefully.")
}

// seedSelf registers the built-in student and their enrolments.
func seedSelf(students *directory.StudentDirectory) error {
	students.AddStudent(selfStudentID, "Sally", "Ang")

	enrolments := []struct {
		dept    string
		number  int
		section string
	}{
		{"CPSC", 210, "202"},
		{"STAT", 241, "201"},
		{"MATH", 221, "202"},
		{"FREN", 111, "202"},
	}
	for _, e := range enrolments {
		if err := students.AddSectionToSchedule(selfStudentID, e.dept, e.number, e.section); err != nil {
			return fmt.Errorf("enrol %s %d %s: %w", e.dept, e.number, e.section, err)
		}
	}
	return nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					return a
				},
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelWarn,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelError,
				AddSource: false,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified	 or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
