// Package monitoring holds the prometheus collectors. Reclaim outcomes
// get their own counter so best-effort cleanup failures stay observable
// even though they never fail a request.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "shoutbox_http_request_duration_seconds",
		Help:    "HTTP request latency by route, method and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoutbox_image_uploads_total",
		Help: "Image uploads to the media store by outcome.",
	}, []string{"outcome"})

	ImageReclaims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shoutbox_image_reclaims_total",
		Help: "Best-effort deletions of replaced or removed images by outcome.",
	}, []string{"outcome"})
)
