package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's instrumentation. Each server owns its own
// registry so multiple instances can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	commands       *prometheus.CounterVec
	recycleEntries prometheus.Gauge
	sessions       prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "goterm",
			Name:      "commands_total",
			Help:      "Commands dispatched through the gateway, by name and result.",
		}, []string{"command", "result"}),
		recycleEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goterm",
			Name:      "recycle_entries",
			Help:      "Current number of entries in the recycle bin.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "goterm",
			Name:      "active_sessions",
			Help:      "Currently tracked gateway sessions.",
		}),
	}

	m.registry.MustRegister(m.commands, m.recycleEntries, m.sessions)
	return m
}

func (m *metrics) observeCommand(name string, isError bool) {
	result := "ok"
	if isError {
		result = "error"
	}
	m.commands.WithLabelValues(name, result).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
