package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "indvend"

// Metrics holds the Prometheus collectors for request timing, local-store
// query timing and marketplace activity.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	queryDuration   *prometheus.HistogramVec

	logins         *prometheus.CounterVec
	visits         prometheus.Counter
	subscriptions  prometheus.Counter
	bookings       prometheus.Counter
	exports        prometheus.Counter
	offers         prometheus.Counter
	workspacesOpen prometheus.Gauge
}

// New creates a Metrics instance backed by its own registry.
// POST: all collectors are registered and ready
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method, route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "SQLite call latency by operation.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		}, []string{"op"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Logins by role.",
		}, []string{"role"}),
		visits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "visits_recorded_total",
			Help:      "Attendance records appended to ledgers.",
		}),
		subscriptions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gym_subscriptions_total",
			Help:      "Gyms newly added to member subscriptions.",
		}),
		bookings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trainer_bookings_total",
			Help:      "Trainer sessions booked.",
		}),
		exports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_exports_total",
			Help:      "Attendance CSV downloads.",
		}),
		offers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "owner_offers_sent_total",
			Help:      "Offers sent from owner dashboards.",
		}),
		workspacesOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "workspaces_open",
			Help:      "Device workspaces held in memory.",
		}),
	}
	m.registry.MustRegister(
		m.requestDuration, m.queryDuration,
		m.logins, m.visits, m.subscriptions, m.bookings, m.exports, m.offers,
		m.workspacesOpen,
		prometheus.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one HTTP request.
// A nil receiver is a no-op so callers can run without metrics.
func (m *Metrics) ObserveRequest(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(d.Seconds())
}

// ObserveQuery records one database call.
func (m *Metrics) ObserveQuery(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// Login counts a login for role.
func (m *Metrics) Login(role string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(role).Inc()
}

// VisitRecorded counts an appended attendance record.
func (m *Metrics) VisitRecorded() {
	if m != nil {
		m.visits.Inc()
	}
}

// Subscribed counts a new gym subscription.
func (m *Metrics) Subscribed() {
	if m != nil {
		m.subscriptions.Inc()
	}
}

// Booked counts a trainer booking.
func (m *Metrics) Booked() {
	if m != nil {
		m.bookings.Inc()
	}
}

// Exported counts an attendance export.
func (m *Metrics) Exported() {
	if m != nil {
		m.exports.Inc()
	}
}

// OfferSent counts an owner offer.
func (m *Metrics) OfferSent() {
	if m != nil {
		m.offers.Inc()
	}
}

// SetWorkspaces reports how many device workspaces are held in memory.
func (m *Metrics) SetWorkspaces(n int) {
	if m != nil {
		m.workspacesOpen.Set(float64(n))
	}
}
