package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkstone",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "inkstone",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkstone",
		Name:      "media_uploads_total",
		Help:      "Stored media uploads by content type and outcome.",
	}, []string{"content_type", "outcome"})

	UploadBytesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inkstone",
		Name:      "media_upload_bytes_total",
		Help:      "Bytes of successfully stored media by content type.",
	}, []string{"content_type"})

	PendingObjectDeletes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "inkstone",
		Name:      "media_pending_object_deletes",
		Help:      "Stored objects still waiting for deletion after the last cleanup run.",
	})
)

// RecordRequest route 为路由模板，未匹配时为 "unmatched"
func RecordRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	RequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func RecordUpload(contentType string, size int64, err error) {
	if err != nil {
		UploadsTotal.WithLabelValues(contentType, "error").Inc()
		return
	}
	UploadsTotal.WithLabelValues(contentType, "ok").Inc()
	UploadBytesTotal.WithLabelValues(contentType).Add(float64(size))
}
