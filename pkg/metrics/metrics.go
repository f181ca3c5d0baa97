package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBTransactionsTotal *prometheus.CounterVec

	// Бизнес-метрики
	BookingsCreated    *prometheus.CounterVec
	SlotConflicts      *prometheus.CounterVec
	RecurringSkipped   *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	BookingsSettled    *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New создает метрики и регистрирует их в стандартном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBTransactionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transactions_total",
			Help:        "Finished transactions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of booking rows created",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		SlotConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Booking requests rejected because a slot was occupied",
			ConstLabels: constLabels,
		}, []string{"source"}),
		RecurringSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_recurring_slots_skipped_total",
			Help:        "Future recurring slots skipped because of a conflict",
			ConstLabels: constLabels,
		}, []string{}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_transitions_total",
			Help:        "Booking status transitions by action",
			ConstLabels: constLabels,
		}, []string{"action"}),
		BookingsSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_settled_total",
			Help:        "Bookings marked as settled",
			ConstLabels: constLabels,
		}, []string{}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Outbound notifications by outcome",
			ConstLabels: constLabels,
		}, []string{"category", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTransactionsTotal,
		m.BookingsCreated,
		m.SlotConflicts,
		m.RecurringSkipped,
		m.StatusTransitions,
		m.BookingsSettled,
		m.NotificationsTotal,
	)

	return m
}

// Методы-обертки безопасны для вызова на nil (метрики выключены)

func (m *Metrics) IncBookingsCreated(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.BookingsCreated.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) IncSlotConflict(source string) {
	if m == nil {
		return
	}
	m.SlotConflicts.WithLabelValues(source).Inc()
}

func (m *Metrics) IncRecurringSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecurringSkipped.WithLabelValues().Add(float64(n))
}

func (m *Metrics) IncStatusTransition(action string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(action).Inc()
}

func (m *Metrics) IncBookingsSettled(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.BookingsSettled.WithLabelValues().Add(float64(n))
}

func (m *Metrics) IncNotification(category, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(category, outcome).Inc()
}
