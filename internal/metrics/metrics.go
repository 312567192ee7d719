package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the various metrics used for monitoring the application.
// It includes counters and a histogram for served HTTP requests,
// a histogram for database query duration and a counter of translated
// "employee not found" faults.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	DBQueryDuration     *prometheus.HistogramVec
	EmployeeNotFound    prometheus.Counter
}

// NewMetrics creates a new Metrics instance with the provided Registerer.
//
// Parameters:
//   - reg: A prometheus.Registerer used to register the metrics.
//
// Returns:
//   - A pointer to the newly created Metrics instance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "members_http_requests_total",
			Help: "Total number of HTTP requests served by the members API.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "members_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the members API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "members_db_query_duration_seconds",
			Help:    "Duration of database queries.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query_type"}), // query_type: 'get_employee_by_id', 'save_employee'
		EmployeeNotFound: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "members_employee_not_found_total",
			Help: "Total number of requests answered with 'employee not found'.",
		}),
	}

	return metrics
}
