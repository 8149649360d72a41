package dating

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceOnDemand       = "on_demand"
	SourceAdHoc          = "ad_hoc"
	SourceRecommendation = "recommendation"
	SourceSync           = "sync"
)

var (
	scoresComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qcs_scores_computed_total",
			Help: "Total number of compatibility scores computed",
		},
		[]string{"source"},
	)

	overallScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qcs_overall_score",
			Help:    "Distribution of overall compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	parseFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qcs_parse_fallbacks_total",
			Help: "Profile fields that could not be decoded and fell back to empty",
		},
		[]string{"field"},
	)

	cacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qcs_cache_requests_total",
			Help: "Score cache lookups by result",
		},
		[]string{"result"},
	)

	syncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qcs_sync_duration_seconds",
			Help:    "Duration of bulk QCS sync runs",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	syncProfiles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qcs_sync_profiles_total",
			Help: "Profiles processed by bulk sync",
		},
		[]string{"status"},
	)
)

func RecordScore(source string, overall int) {
	scoresComputed.WithLabelValues(source).Inc()
	overallScores.Observe(float64(overall))
}

func RecordParseFallback(field string) {
	parseFallbacks.WithLabelValues(field).Inc()
}

func RecordCacheRequest(result string) {
	cacheRequests.WithLabelValues(result).Inc()
}

func RecordSyncDuration(d time.Duration) {
	syncDuration.Observe(d.Seconds())
}

func RecordSyncProfile(status string) {
	syncProfiles.WithLabelValues(status).Inc()
}
