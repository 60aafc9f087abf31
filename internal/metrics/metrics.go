package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session validation outcomes.
const (
	SessionValid   = "valid"
	SessionRenewed = "renewed"
	SessionAbsent  = "absent"
	SessionExpired = "expired"
	SessionError   = "error"
)

// Check-in access sources.
const (
	CheckinToken  = "token"
	CheckinStore  = "store"
	CheckinDenied = "denied"
	CheckinError  = "error"
)

// Metrics holds the collectors for session and check-in access decisions.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	sessionResults  *prometheus.CounterVec
	sessionsCreated prometheus.Counter
	sessionsEvicted prometheus.Counter
	checkinResults  *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		sessionResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_checkin",
			Subsystem: "session",
			Name:      "validations_total",
			Help:      "Session token validations by outcome.",
		}, []string{"outcome"}),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotel_checkin",
			Subsystem: "session",
			Name:      "created_total",
			Help:      "Sessions created at login.",
		}),
		sessionsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hotel_checkin",
			Subsystem: "session",
			Name:      "evicted_total",
			Help:      "Sessions removed to keep users under the concurrent session cap.",
		}),
		checkinResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotel_checkin",
			Subsystem: "public_access",
			Name:      "resolutions_total",
			Help:      "Public check-in access resolutions by source and reason.",
		}, []string{"source", "reason"}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionResults,
		m.sessionsCreated,
		m.sessionsEvicted,
		m.checkinResults,
	)
	return m
}

func (m *Metrics) SessionValidated(outcome string) {
	if m == nil {
		return
	}
	m.sessionResults.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionCreated(evicted int) {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
	if evicted > 0 {
		m.sessionsEvicted.Add(float64(evicted))
	}
}

func (m *Metrics) CheckinResolved(source, reason string) {
	if m == nil {
		return
	}
	m.checkinResults.WithLabelValues(source, reason).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
