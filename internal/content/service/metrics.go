package service

import (
	"github.com/hackerclone/hackerclone/internal/observability/metrics"
)

func incrementPostsCreated() {
	metrics.PostsCreated.Inc()
}

func incrementCommentsCreated(kind string) {
	metrics.CommentsCreated.WithLabelValues(kind).Inc()
}

func incrementFeedRequests() {
	metrics.FeedRequestsTotal.Inc()
}
