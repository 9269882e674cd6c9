package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness", Name: "http_requests_total", Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitness", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	HandlerErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitness", Name: "handler_errors_total", Help: "Handler errors",
	})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitness", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
	StudentsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness", Name: "students_created_total", Help: "Stored fitness records by level",
	}, []string{"level"})
	StudentsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitness", Name: "students_deleted_total", Help: "Deleted fitness records",
	})
	Scores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fitness", Name: "score", Help: "Composite fitness scores of new records",
		Buckets: prometheus.LinearBuckets(25, 5, 16),
	})
	StudentsByLevel = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "fitness", Name: "students", Help: "Stored fitness records per level",
	}, []string{"level"})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, HandlerErrors, DBPing,
		StudentsCreated, StudentsDeleted, Scores, StudentsByLevel)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }

func ObserveRequest(route string, code int, d time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}
