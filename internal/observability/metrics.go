package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRankDuration records how long ranking a snapshot takes, by resolved strategy.
	FeedRankDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "moodboard_feed_rank_duration_seconds",
		Help:    "Time spent ranking a board snapshot",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	// FeedRequestsTotal counts feed requests by resolved strategy and whether
	// the requested name fell back to the default.
	FeedRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodboard_feed_requests_total",
		Help: "Total number of ranked feed requests",
	}, []string{"strategy", "fallback"})

	// FeedSnapshotPosts observes the number of posts read per snapshot.
	FeedSnapshotPosts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "moodboard_feed_snapshot_posts",
		Help:    "Posts read into a single ranking snapshot",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	// BoardWritesTotal counts successful board writes by kind.
	BoardWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodboard_board_writes_total",
		Help: "Total number of board writes by kind",
	}, []string{"kind"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodboard_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// WebSocketConnections is the gauge of live feed connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "moodboard_websocket_connections",
		Help: "Number of open live feed WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped for slow clients.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moodboard_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"reason"})
)
