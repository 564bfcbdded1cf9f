// Package metrics exposes Prometheus counters for the generation
// pipelines. Each Metrics value owns its registry so tests never collide
// on global registration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	JobsSubmitted *prometheus.CounterVec
	PollsTotal    prometheus.Counter
	Failures      *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		JobsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_jobs_submitted_total",
			Help: "Generation calls started, by pipeline.",
		}, []string{"pipeline"}),
		PollsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "generation_job_polls_total",
			Help: "Poll round-trips against the video pipeline.",
		}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "generation_failures_total",
			Help: "Failed generation calls, by failure kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.JobsSubmitted, m.PollsTotal, m.Failures)
	return m
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
