package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	CommentsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_comments_created_total",
			Help: "Total number of comments created",
		},
		[]string{"kind"},
	)

	FeedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "forum_feed_requests_total",
			Help: "Total number of front feed reads",
		},
	)
)
