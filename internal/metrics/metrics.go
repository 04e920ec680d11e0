package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	MeetupsResolved *prometheus.CounterVec
	ProviderErrors  prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	SegmentFailures prometheus.Counter
	PlacesCached    prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		MeetupsResolved: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meetup_resolutions_total",
			Help: "Total number of meetup resolutions by outcome.",
		}, []string{"outcome"}),
		ProviderErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meetup_provider_api_errors_total",
			Help: "Total number of errors received from external provider APIs.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meetup_provider_request_duration_seconds",
			Help:    "Duration of requests to external provider APIs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		SegmentFailures: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meetup_route_segment_failures_total",
			Help: "Total number of route segments skipped after a provider failure.",
		}),
		PlacesCached: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meetup_places_cached",
			Help: "Current number of places held in the place catalog.",
		}),
	}
}
