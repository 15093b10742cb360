package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mdnssearch"

var (
	CatalogRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "records",
		Help:      "Number of resolved services currently in the catalog.",
	})

	CatalogMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "mutations_total",
		Help:      "Number of catalog mutations that changed its content, by operation.",
	}, []string{"op"})

	ResolveAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "resolve_attempts_total",
		Help:      "Number of resolve attempts, by service type and outcome.",
	}, []string{"service_type", "outcome"})

	DiscoverySessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "discovery",
		Name:      "sessions",
		Help:      "Number of service types currently browsed.",
	})

	RegistrationSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "register",
		Name:      "sessions",
		Help:      "Number of services currently advertised or being advertised.",
	})
)
