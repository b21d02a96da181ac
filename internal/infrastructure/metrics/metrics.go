package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger engine metrics
	TransactionsRecorded prometheus.Counter
	TransactionsReversed prometheus.Counter
	PaymentsRecorded     prometheus.Counter
	PaymentsReversed     prometheus.Counter
	CommandDuration      *prometheus.HistogramVec
	BillAmount           prometheus.Histogram

	// Account metrics
	AccountsCreated prometheus.Counter
	AccountsDeleted prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Ledger engine metrics
		TransactionsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_transactions_recorded_total",
			Help: "Total number of transaction entries recorded",
		}),
		TransactionsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_transactions_reversed_total",
			Help: "Total number of transaction entries reversed",
		}),
		PaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_payments_recorded_total",
			Help: "Total number of payment entries recorded",
		}),
		PaymentsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_payments_reversed_total",
			Help: "Total number of payment entries reversed",
		}),
		CommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "khatabook_command_duration_seconds",
				Help:    "Duration of ledger engine commands",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		BillAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "khatabook_bill_amount",
			Help:    "Bill totals of recorded transactions",
			Buckets: []float64{10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "khatabook_accounts_deleted_total",
			Help: "Total number of accounts deleted",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khatabook_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "khatabook_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khatabook_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "khatabook_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "khatabook_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khatabook_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khatabook_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "khatabook_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),
	}
}
