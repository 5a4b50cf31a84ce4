package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллекторы Prometheus для сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	DBPoolOpenConnections *prometheus.GaugeVec
	DBPoolInUse           *prometheus.GaugeVec
	DBPoolIdle            *prometheus.GaugeVec

	BookingsCreatedTotal      *prometheus.CounterVec
	AvailabilityDenialsTotal  *prometheus.CounterVec
	PaymentVerificationsTotal *prometheus.CounterVec
}

// IncBookingCreated инкрементирует счетчик созданных бронирований
// kind: draft | tour_package
func (m *Metrics) IncBookingCreated(kind string) {
	m.BookingsCreatedTotal.WithLabelValues(kind).Inc()
}

// IncAvailabilityDenial инкрементирует счетчик отказов по вместимости
func (m *Metrics) IncAvailabilityDenial(resourceType string) {
	m.AvailabilityDenialsTotal.WithLabelValues(resourceType).Inc()
}

// IncPaymentVerification инкрементирует счетчик попыток верификации платежа
// result: ok | invalid_signature | capacity_lost | error
func (m *Metrics) IncPaymentVerification(result string) {
	m.PaymentVerificationsTotal.WithLabelValues(result).Inc()
}

// New регистрирует и возвращает коллекторы метрик сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBPoolOpenConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Current number of open connections in the pool",
			ConstLabels: constLabels,
		}, []string{}),

		DBPoolInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Current number of connections in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBPoolIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Current number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		BookingsCreatedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of bookings created",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		AvailabilityDenialsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_denials_total",
			Help:        "Total number of availability denials by resource type",
			ConstLabels: constLabels,
		}, []string{"resource_type"}),

		PaymentVerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_verifications_total",
			Help:        "Total number of payment verification attempts",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}
