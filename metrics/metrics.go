// Package metrics records operational counters for the simulator. The engine
// itself stays side-effect free; only the HTTP layer ticks these.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine wraps a dedicated prometheus registry so tests can run many engines
// without duplicate-registration panics.
type Engine struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	bidsBuilt        *prometheus.CounterVec
	mediationWinners *prometheus.CounterVec
	signatureChecks  *prometheus.CounterVec
}

func NewEngine() *Engine {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	e := &Engine{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mocktioneer_requests_total",
			Help: "Count of requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		bidsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mocktioneer_bids_built_total",
			Help: "Count of bids built by dialect.",
		}, []string{"dialect"}),
		mediationWinners: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mocktioneer_mediation_winners_total",
			Help: "Count of mediation winners by seat.",
		}, []string{"seat"}),
		signatureChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mocktioneer_signature_checks_total",
			Help: "Count of request signature verifications by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(e.requests, e.bidsBuilt, e.mediationWinners, e.signatureChecks)
	return e
}

func (e *Engine) RecordRequest(endpoint, status string) {
	e.requests.WithLabelValues(endpoint, status).Inc()
}

func (e *Engine) RecordBids(dialect string, count int) {
	e.bidsBuilt.WithLabelValues(dialect).Add(float64(count))
}

func (e *Engine) RecordMediationWinner(seat string) {
	e.mediationWinners.WithLabelValues(seat).Inc()
}

func (e *Engine) RecordSignatureCheck(outcome string) {
	e.signatureChecks.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in prometheus exposition format.
func (e *Engine) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// Gather is a test hook into the underlying registry.
func (e *Engine) Gather() (map[string]float64, error) {
	families, err := e.registry.Gather()
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64, len(families))
	for _, family := range families {
		for _, metric := range family.Metric {
			if metric.Counter != nil {
				totals[family.GetName()] += metric.Counter.GetValue()
			}
		}
	}
	return totals, nil
}
