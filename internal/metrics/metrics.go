package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DiscoveryRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_discovery_requests_total",
		Help: "Total number of public poster discovery requests",
	})
	SubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_submissions_total",
		Help: "Total number of poster submissions accepted into pending",
	})
	SubmissionRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_submission_rejections_total",
		Help: "Total number of poster submissions rejected by validation",
	})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_geocode_cache_hits_total",
		Help: "Total geocode cache hits",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_geocode_cache_misses_total",
		Help: "Total geocode cache misses",
	})
	ModerationActionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wall_moderation_actions_total",
		Help: "Total moderation actions by action name",
	}, []string{"action"})
	SweptExpiredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wall_swept_expired_total",
		Help: "Total posters marked expired by the lifecycle sweeper",
	})
)

func init() {
	prometheus.MustRegister(
		DiscoveryRequestsTotal,
		SubmissionsTotal,
		SubmissionRejectionsTotal,
		GeocodeCacheHitsTotal,
		GeocodeCacheMissesTotal,
		ModerationActionsTotal,
		SweptExpiredTotal,
	)
}

// Handler exposes the registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
