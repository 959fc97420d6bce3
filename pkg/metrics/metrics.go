package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	ReservationOutcomes *prometheus.CounterVec

	FanoutPublished   *prometheus.CounterVec
	FanoutDropped     *prometheus.CounterVec
	FanoutSubscribers *prometheus.GaugeVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: labels,
		}, []string{}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: labels,
		}, []string{}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: labels,
		}, []string{}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}, []string{}),

		ReservationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservation_outcomes_total",
			Help:        "Outcomes of booking and cancellation attempts",
			ConstLabels: labels,
		}, []string{"operation", "outcome"}),

		FanoutPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fanout_published_total",
			Help:        "Slot change events published",
			ConstLabels: labels,
		}, []string{"transport"}),

		FanoutDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "fanout_dropped_total",
			Help:        "Slot change events dropped for slow subscribers",
			ConstLabels: labels,
		}, []string{}),

		FanoutSubscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "fanout_subscribers",
			Help:        "Number of active week subscriptions",
			ConstLabels: labels,
		}, []string{}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.ReservationOutcomes,
		m.FanoutPublished,
		m.FanoutDropped,
		m.FanoutSubscribers,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// IncReservationOutcome увеличивает счетчик исходов операций бронирования
// Безопасен для nil-получателя (метрики выключены)
func (m *Metrics) IncReservationOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationOutcomes.WithLabelValues(operation, outcome).Inc()
}

// IncFanoutPublished увеличивает счетчик опубликованных событий
func (m *Metrics) IncFanoutPublished(transport string) {
	if m == nil {
		return
	}
	m.FanoutPublished.WithLabelValues(transport).Inc()
}

// IncFanoutDropped увеличивает счетчик потерянных событий
func (m *Metrics) IncFanoutDropped() {
	if m == nil {
		return
	}
	m.FanoutDropped.WithLabelValues().Inc()
}

// SetFanoutSubscribers выставляет текущее число подписок
func (m *Metrics) SetFanoutSubscribers(n int) {
	if m == nil {
		return
	}
	m.FanoutSubscribers.WithLabelValues().Set(float64(n))
}
