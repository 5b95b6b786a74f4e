// Package telemetry holds the process-wide prometheus instruments and the
// HTTP measurement middleware.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_messages_sent_total",
		Help: "Messages appended via the chat store.",
	})

	BlockedSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_blocked_sends_total",
		Help: "Send attempts refused by the contact-block policy.",
	})

	AssistantReplies = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_assistant_replies_total",
		Help: "Assistant replies appended to ai chats.",
	})

	AssistantFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_assistant_failures_total",
		Help: "Assistant completion attempts that failed and were swallowed.",
	})

	StatusPosts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_status_posts_total",
		Help: "Status updates posted.",
	})

	StatusesPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "familyconnect_statuses_purged_total",
		Help: "Expired status updates removed by the retention sweep.",
	})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "familyconnect_http_request_duration_seconds",
		Help:    "HTTP request latency by method and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "code"})
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware measures request latency and status codes.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)
		requestDuration.WithLabelValues(r.Method, strconv.Itoa(rec.code)).
			Observe(time.Since(start).Seconds())
	})
}
