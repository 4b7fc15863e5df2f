// Package metrics exposes ALMS counters and gauges in Prometheus format.
//
// Every method is safe on a nil *Metrics, so components can be built without
// instrumentation in tests.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace           = "alms"
	activeSessionsQuery = 2 * time.Second
)

type Metrics struct {
	registry        *prometheus.Registry
	authOutcomes    *prometheus.CounterVec
	sessionsIssued  prometheus.Counter
	decryptFailures prometheus.Counter
	messagesSent    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_outcomes_total",
			Help:      "Authentication attempts by outcome.",
		}, []string{"outcome"}),
		sessionsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_issued_total",
			Help:      "Session tokens issued after a successful login.",
		}),
		decryptFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "message_decrypt_failures_total",
			Help:      "Stored messages that could not be decrypted and were returned verbatim.",
		}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Messages accepted for storage.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authOutcomes,
		m.sessionsIssued,
		m.decryptFailures,
		m.messagesSent,
	)

	return m
}

func (m *Metrics) ObserveAuth(outcome string) {
	if m == nil {
		return
	}
	m.authOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SessionIssued() {
	if m == nil {
		return
	}
	m.sessionsIssued.Inc()
}

func (m *Metrics) DecryptFailed() {
	if m == nil {
		return
	}
	m.decryptFailures.Inc()
}

func (m *Metrics) MessageSent() {
	if m == nil {
		return
	}
	m.messagesSent.Inc()
}

// CountFunc reports a current count, e.g. the number of active sessions.
type CountFunc func(ctx context.Context) (int, error)

// RegisterActiveSessions exposes alms_active_sessions, evaluated on every
// scrape.
func (m *Metrics) RegisterActiveSessions(count CountFunc, logger *slog.Logger) {
	if m == nil {
		return
	}
	m.registry.MustRegister(&activeSessionsCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "active_sessions"),
			"Session tokens whose expiry lies in the future.",
			nil, nil,
		),
		count:  count,
		logger: logger,
	})
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

type activeSessionsCollector struct {
	desc   *prometheus.Desc
	count  CountFunc
	logger *slog.Logger
}

func (c *activeSessionsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *activeSessionsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), activeSessionsQuery)
	defer cancel()

	n, err := c.count(ctx)
	if err != nil {
		c.logger.Warn("failed to count active sessions", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(n))
}
