package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/metrics"
	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/routing"
)

// RouteResult is the assembled walking path for one day's sections.
// Failed lists the indexes of section pairs whose segment could not be
// fetched; the path simply skips those legs.
type RouteResult struct {
	Points []models.LatLon
	Failed []int
}

// Partial reports whether any segment was skipped.
func (r *RouteResult) Partial() bool {
	return len(r.Failed) > 0
}

// Assembler turns an ordered list of sections into a connected walking
// path by requesting pairwise segments from the routing provider.
type Assembler struct {
	log        *slog.Logger     // Logger for logging assembler activity
	router     routing.Provider // Pedestrian routing provider
	metrics    *metrics.Metrics // Metrics for segment failures and latency
	numWorkers int              // Number of concurrent segment fetchers
}

// NewAssembler creates a route assembler. With numWorkers of one,
// segments are requested strictly in schedule order; more workers fetch
// them concurrently and reassemble by index.
func NewAssembler(log *slog.Logger, router routing.Provider, metrics *metrics.Metrics, numWorkers int) *Assembler {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &Assembler{log: log, router: router, metrics: metrics, numWorkers: numWorkers}
}

// AssembleRoute requests one segment per consecutive section pair and
// concatenates them in schedule order, keeping the shared endpoints. A
// failed segment is skipped and recorded, never silently dropped; fewer
// than two sections yields ErrNoRoute.
func (a *Assembler) AssembleRoute(ctx context.Context, sections []*models.Section) (*RouteResult, error) {
	if len(sections) < 2 {
		return nil, fmt.Errorf("%d section(s): %w", len(sections), meetuperr.ErrNoRoute)
	}

	pairs := len(sections) - 1
	segments := make([][]models.LatLon, pairs)
	failed := make([]bool, pairs)

	jobs := make(chan int, pairs)
	var wgr sync.WaitGroup

	workers := a.numWorkers
	if workers > pairs {
		workers = pairs
	}
	for i := 0; i < workers; i++ {
		wgr.Add(1)
		go a.segmentWorker(ctx, &wgr, sections, segments, failed, jobs)
	}

	for i := 0; i < pairs; i++ {
		jobs <- i
	}
	close(jobs)
	wgr.Wait()

	result := &RouteResult{}
	for i := 0; i < pairs; i++ {
		if failed[i] {
			result.Failed = append(result.Failed, i)
			continue
		}
		result.Points = append(result.Points, segments[i]...)
	}
	sort.Ints(result.Failed)

	if result.Partial() {
		a.log.WarnContext(ctx, "Route assembled with missing segments",
			"pairs", pairs, "failed", result.Failed)
	}
	return result, nil
}

// segmentWorker fetches segments by pair index. Each index owns its own
// result slot, so no locking is needed beyond the WaitGroup.
func (a *Assembler) segmentWorker(
	ctx context.Context,
	wgr *sync.WaitGroup,
	sections []*models.Section,
	segments [][]models.LatLon,
	failed []bool,
	jobs <-chan int,
) {
	defer wgr.Done()
	for idx := range jobs {
		from := sections[idx].Building
		to := sections[idx+1].Building

		startTime := time.Now()
		path, err := a.router.Route(ctx, from.Location, to.Location)
		a.metrics.RequestSeconds.WithLabelValues("routing").Observe(time.Since(startTime).Seconds())

		if err != nil {
			// Best-effort route: skip the leg, keep assembling.
			a.log.ErrorContext(ctx, "Failed to fetch route segment",
				"index", idx, "from", from.Name, "to", to.Name, "error", err)
			a.metrics.SegmentFailures.Inc()
			a.metrics.ProviderErrors.Inc()
			failed[idx] = true
			continue
		}
		segments[idx] = path
	}
}

// BuildPlot assembles the full presentation of one student's day: the
// ordered sections plus the walking route connecting them. A day with no
// sections yields ErrNoSections; a single section yields ErrNoRoute,
// since there is no pair to route between.
func (a *Assembler) BuildPlot(
	ctx context.Context,
	student *models.Student,
	day models.Day,
	colour string,
) (*models.SchedulePlot, error) {
	sections := student.Schedule().SectionsOn(day)
	if len(sections) == 0 {
		return nil, fmt.Errorf("student %d on %s: %w", student.ID, day, meetuperr.ErrNoSections)
	}

	if len(sections) == 1 {
		return nil, fmt.Errorf("student %d on %s: %w", student.ID, day, meetuperr.ErrNoRoute)
	}

	result, err := a.AssembleRoute(ctx, sections)
	if err != nil {
		return nil, err
	}
	plot := models.NewSchedulePlot(student.FirstName, colour, sections)
	plot.Route = result.Points
	plot.FailedSegments = result.Failed
	return plot, nil
}
