package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик Prometheus сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// БД
	DBQueryDuration  *prometheus.HistogramVec
	DBQueryErrors    *prometheus.CounterVec
	DBOpenConns      prometheus.Gauge
	DBInUseConns     prometheus.Gauge
	DBIdleConns      prometheus.Gauge
	DBWaitCount      prometheus.Gauge
	DBWaitDurationMs prometheus.Gauge

	// Бизнес-метрики
	BookingsCreated       *prometheus.CounterVec
	BookingsRejected      *prometheus.CounterVec
	EquipmentTransitions  *prometheus.CounterVec
	CommissionsProcessed  prometheus.Counter
	AvailabilityCacheHits *prometheus.CounterVec
}

// New регистрирует метрики в реестре по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном реестре (в тестах - в отдельном)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Duration of database queries",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		DBWaitDurationMs: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_duration_milliseconds",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}, []string{"time_slot"}),

		BookingsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_rejected_total",
			Help:        "Total number of rejected booking attempts",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		EquipmentTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "equipment_transitions_total",
			Help:        "Equipment status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		CommissionsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name:        "commissions_processed_total",
			Help:        "Total number of processed commission transactions",
			ConstLabels: constLabels,
		}),

		AvailabilityCacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_requests_total",
			Help:        "Availability cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// Методы ниже безопасны для nil: без метрик вызовы ничего не делают.

// ObserveCache результат обращения к кешу доступности (hit, miss, error)
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.AvailabilityCacheHits.WithLabelValues(result).Inc()
}

// BookingCreated созданное бронирование по слоту
func (m *Metrics) BookingCreated(timeSlot string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(timeSlot).Inc()
}

// BookingRejected отклоненная попытка бронирования
func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

// EquipmentTransition смена статуса оборудования
func (m *Metrics) EquipmentTransition(from, to string) {
	if m == nil {
		return
	}
	m.EquipmentTransitions.WithLabelValues(from, to).Inc()
}

// CommissionProcessed проведенное начисление комиссии
func (m *Metrics) CommissionProcessed() {
	if m == nil {
		return
	}
	m.CommissionsProcessed.Inc()
}
