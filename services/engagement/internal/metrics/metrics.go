package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "engagement"

var (
	LikeChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "like_changes_total",
		Help:      "Like state transitions by business and result.",
	}, []string{"business", "result"})

	Views = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "discussion_views_total",
		Help:      "Recorded discussion views.",
	})

	RatingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Submitted ratings by stars.",
	}, []string{"stars"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_cache_lookups_total",
		Help:      "Post list lookups by layer that answered.",
	}, []string{"layer"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Engagement events sent to kafka by type and result.",
	}, []string{"type", "result"})

	tableCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_count",
		Help:      "Record count for a table.",
	}, []string{"table"})
)

const (
	LayerLocal = "local"
	LayerRedis = "redis"
	LayerDB    = "db"

	ResultLiked     = "liked"
	ResultUnliked   = "unliked"
	ResultUnchanged = "unchanged"

	ResultOk     = "ok"
	ResultFailed = "failed"
)

// LikeResult 点赞结果对应的label
func LikeResult(liked, changed bool) string {
	switch {
	case !changed:
		return ResultUnchanged
	case liked:
		return ResultLiked
	default:
		return ResultUnliked
	}
}
