// Package service holds the meetup resolver, the route assembler and the
// place-catalog loader. The core computations here are synchronous, pure
// functions over in-memory state; only the providers they call suspend.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/campusmeet/meetup-service/internal/catalog"
	"github.com/campusmeet/meetup-service/internal/meetuperr"
	"github.com/campusmeet/meetup-service/internal/metrics"
	"github.com/campusmeet/meetup-service/internal/models"
)

// Outcome labels for the resolution counter.
const (
	outcomeFeasible   = "feasible"
	outcomeInfeasible = "infeasible"
)

// Resolver determines whether two students can meet and where.
type Resolver struct {
	log     *slog.Logger          // Logger for logging resolver activity
	places  *catalog.PlaceCatalog // Cached venue candidates
	metrics *metrics.Metrics      // Metrics for tracking outcomes
}

// NewResolver creates a meetup resolver over the given place catalog.
func NewResolver(log *slog.Logger, places *catalog.PlaceCatalog, metrics *metrics.Metrics) *Resolver {
	return &Resolver{log: log, places: places, metrics: metrics}
}

// Resolve determines feasibility of a meetup between me and partner on
// the given day and time, and returns the candidate places lying within
// radiusMeters of both anchor buildings. An empty category disables
// venue filtering. Infeasible outcomes are terminal typed errors, one
// human-readable reason per case.
//
// Feasibility is commutative: swapping me and partner yields the same
// verdict, though the infeasible reason names the other side.
func (r *Resolver) Resolve(
	ctx context.Context,
	me, partner *models.Student,
	day models.Day,
	t models.ClockTime,
	radiusMeters float64,
	category string,
) ([]models.Place, error) {
	// A nil requester is a caller bug; a nil partner is a domain verdict.
	if me == nil {
		return nil, fmt.Errorf("requesting student: %w", meetuperr.ErrNotFound)
	}
	if partner == nil {
		return nil, r.infeasible(ctx, meetuperr.NoPartner)
	}

	if len(me.Schedule().SectionsOn(day)) == 0 {
		return nil, r.infeasible(ctx, meetuperr.SelfHasNoClasses)
	}
	if len(partner.Schedule().SectionsOn(day)) == 0 {
		return nil, r.infeasible(ctx, meetuperr.PartnerHasNoClasses)
	}
	if !me.Schedule().HasFreeBlockAt(day, t) {
		return nil, r.infeasible(ctx, meetuperr.SelfNotFree)
	}
	if !partner.Schedule().HasFreeBlockAt(day, t) {
		return nil, r.infeasible(ctx, meetuperr.PartnerNotFree)
	}

	// Both anchors exist: each side has at least one section today.
	myAnchor, _ := me.Schedule().AnchorAt(day, t)
	partnerAnchor, _ := partner.Schedule().AnchorAt(day, t)

	myPlaces := r.places.PlacesNearWithCategory(myAnchor.Location, radiusMeters, category)
	partnerPlaces := r.places.PlacesNearWithCategory(partnerAnchor.Location, radiusMeters, category)

	candidates := intersectPlaces(myPlaces, partnerPlaces)

	r.log.InfoContext(ctx, "Meetup resolved",
		"me", me.ID, "partner", partner.ID,
		"day", day.String(), "time", t.String(),
		"my_anchor", myAnchor.Name, "partner_anchor", partnerAnchor.Name,
		"candidates", len(candidates))
	r.metrics.MeetupsResolved.WithLabelValues(outcomeFeasible).Inc()

	return candidates, nil
}

func (r *Resolver) infeasible(ctx context.Context, reason meetuperr.InfeasibleReason) error {
	err := meetuperr.Infeasible(reason)
	r.log.InfoContext(ctx, "Meetup infeasible", "reason", err.Error())
	r.metrics.MeetupsResolved.WithLabelValues(outcomeInfeasible).Inc()
	return err
}

// intersectPlaces returns the places present in both sets, by identity.
// Symmetric and idempotent; no ordering guarantee.
func intersectPlaces(a, b []models.Place) []models.Place {
	inA := make(map[models.PlaceKey]struct{}, len(a))
	for _, p := range a {
		inA[p.Key()] = struct{}{}
	}

	var out []models.Place
	seen := make(map[models.PlaceKey]struct{})
	for _, p := range b {
		key := p.Key()
		if _, ok := inA[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
