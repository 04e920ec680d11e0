package service_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/models"
	"github.com/campusmeet/meetup-service/internal/service"
)

// mockRouter is a scripted routing provider. It records every requested
// segment in call order.
type mockRouter struct {
	mu        sync.Mutex
	calls     [][2]models.LatLon
	routeFunc func(from, to models.LatLon) ([]models.LatLon, error)
}

func (m *mockRouter) Route(_ context.Context, from, to models.LatLon) ([]models.LatLon, error) {
	m.mu.Lock()
	m.calls = append(m.calls, [2]models.LatLon{from, to})
	m.mu.Unlock()
	return m.routeFunc(from, to)
}

// straightLine returns the trivial two-point segment between the
// endpoints.
func straightLine(from, to models.LatLon) ([]models.LatLon, error) {
	return []models.LatLon{from, to}, nil
}

var buildingESB = models.Building{Name: "ESB", Location: models.MustLatLon(49.262866, -123.253230)}

func threeClassDay(t *testing.T) []*models.Section {
	t.Helper()
	student := models.NewStudent(1, "Sally", "Ang")
	addSection(t, student, "A", models.PatternMWF, "09:00", "09:50", buildingESB)
	addSection(t, student, "B", models.PatternMWF, "12:00", "12:50", buildingDMP)
	addSection(t, student, "C", models.PatternMWF, "14:00", "14:50", buildingBuchanan)
	return student.Schedule().SectionsOn(models.Monday)
}

func TestAssembleRoute(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("one segment per consecutive pair, in schedule order", func(t *testing.T) {
		router := &mockRouter{routeFunc: straightLine}
		assembler := service.NewAssembler(logger, router, testMetrics(), 1)
		sections := threeClassDay(t)

		result, err := assembler.AssembleRoute(ctx, sections)
		require.NoError(t, err)
		assert.False(t, result.Partial())

		// A single worker requests the pairs strictly in order.
		require.Len(t, router.calls, 2)
		assert.Equal(t, buildingESB.Location, router.calls[0][0])
		assert.Equal(t, buildingDMP.Location, router.calls[0][1])
		assert.Equal(t, buildingDMP.Location, router.calls[1][0])
		assert.Equal(t, buildingBuchanan.Location, router.calls[1][1])

		// Segments concatenate keeping shared endpoints.
		require.Len(t, result.Points, 4)
		assert.Equal(t, buildingESB.Location, result.Points[0])
		assert.Equal(t, buildingDMP.Location, result.Points[1])
		assert.Equal(t, buildingDMP.Location, result.Points[2])
		assert.Equal(t, buildingBuchanan.Location, result.Points[3])
	})

	t.Run("concurrent workers reassemble by index", func(t *testing.T) {
		router := &mockRouter{routeFunc: straightLine}
		assembler := service.NewAssembler(logger, router, testMetrics(), 4)
		sections := threeClassDay(t)

		result, err := assembler.AssembleRoute(ctx, sections)
		require.NoError(t, err)

		require.Len(t, result.Points, 4)
		assert.Equal(t, buildingESB.Location, result.Points[0])
		assert.Equal(t, buildingBuchanan.Location, result.Points[3])
	})

	t.Run("failed segment is skipped and recorded", func(t *testing.T) {
		router := &mockRouter{routeFunc: func(from, to models.LatLon) ([]models.LatLon, error) {
			if from == buildingESB.Location {
				return nil, assert.AnError
			}
			return straightLine(from, to)
		}}
		assembler := service.NewAssembler(logger, router, testMetrics(), 1)
		sections := threeClassDay(t)

		result, err := assembler.AssembleRoute(ctx, sections)
		require.NoError(t, err, "a failed segment does not fail the route")

		assert.True(t, result.Partial())
		assert.Equal(t, []int{0}, result.Failed)

		// Only the second leg remains.
		require.Len(t, result.Points, 2)
		assert.Equal(t, buildingDMP.Location, result.Points[0])
		assert.Equal(t, buildingBuchanan.Location, result.Points[1])
	})

	t.Run("all segments failing yields an empty partial route", func(t *testing.T) {
		router := &mockRouter{routeFunc: func(_, _ models.LatLon) ([]models.LatLon, error) {
			return nil, assert.AnError
		}}
		assembler := service.NewAssembler(logger, router, testMetrics(), 2)
		sections := threeClassDay(t)

		result, err := assembler.AssembleRoute(ctx, sections)
		require.NoError(t, err)

		assert.Empty(t, result.Points)
		assert.Equal(t, []int{0, 1}, result.Failed)
	})

	t.Run("fewer than two sections", func(t *testing.T) {
		router := &mockRouter{routeFunc: straightLine}
		assembler := service.NewAssembler(logger, router, testMetrics(), 1)

		_, err := assembler.AssembleRoute(ctx, nil)
		require.ErrorIs(t, err, meetuperr.ErrNoRoute)

		sections := threeClassDay(t)
		_, err = assembler.AssembleRoute(ctx, sections[:1])
		require.ErrorIs(t, err, meetuperr.ErrNoRoute)
		assert.Empty(t, router.calls)
	})
}

func TestBuildPlot(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	t.Run("full plot", func(t *testing.T) {
		router := &mockRouter{routeFunc: straightLine}
		assembler := service.NewAssembler(logger, router, testMetrics(), 1)

		student := models.NewStudent(1, "Sally", "Ang")
		addSection(t, student, "A", models.PatternMWF, "09:00", "09:50", buildingESB)
		addSection(t, student, "B", models.PatternMWF, "12:00", "12:50", buildingDMP)

		plot, err := assembler.BuildPlot(ctx, student, models.Monday, "blue")
		require.NoError(t, err)

		assert.Equal(t, "Sally", plot.Owner)
		assert.Equal(t, "blue", plot.Colour)
		require.Len(t, plot.Sections, 2)
		assert.Equal(t, "A", plot.Sections[0].ID)
		assert.Len(t, plot.Route, 2)
		assert.Empty(t, plot.FailedSegments)
	})

	t.Run("day with no classes", func(t *testing.T) {
		assembler := service.NewAssembler(logger, &mockRouter{routeFunc: straightLine}, testMetrics(), 1)
		student := models.NewStudent(1, "Sally", "Ang")

		_, err := assembler.BuildPlot(ctx, student, models.Monday, "blue")
		require.ErrorIs(t, err, meetuperr.ErrNoSections)
	})

	t.Run("single class day", func(t *testing.T) {
		assembler := service.NewAssembler(logger, &mockRouter{routeFunc: straightLine}, testMetrics(), 1)
		student := models.NewStudent(1, "Sally", "Ang")
		addSection(t, student, "A", models.PatternMWF, "09:00", "09:50", buildingESB)

		_, err := assembler.BuildPlot(ctx, student, models.Monday, "blue")
		require.ErrorIs(t, err, meetuperr.ErrNoRoute)
	})
}
