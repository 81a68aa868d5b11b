package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/corpus"
	"github.com/hquocmanh0502/cmp-travel-ai-web/internal/orchestrator"
)

// Metrics holds the service collectors. Each Server owns its own registry.
type Metrics struct {
	registry *prometheus.Registry

	answers     *prometheus.CounterVec
	attempts    prometheus.Counter
	latency     prometheus.Histogram
	rateLimited prometheus.Counter
	requests    *prometheus.CounterVec
}

// NewMetrics registers the collectors. stats is read at scrape time.
func NewMetrics(stats func() corpus.Stats) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travelrag",
			Name:      "answers_total",
			Help:      "Answers produced, by outcome.",
		}, []string{"outcome"}),
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrag",
			Name:      "generation_attempts_total",
			Help:      "Calls made to the generation provider.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "travelrag",
			Name:      "answer_duration_seconds",
			Help:      "End-to-end answer latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "travelrag",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the per-client rate limit.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "travelrag",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(m.answers, m.attempts, m.latency, m.rateLimited, m.requests)
	if stats != nil {
		m.registry.MustRegister(&corpusCollector{stats: stats})
	}
	return m
}

// Registry exposes the registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAnswer records one pipeline answer.
func (m *Metrics) ObserveAnswer(ans orchestrator.Answer) {
	m.answers.WithLabelValues(string(ans.Outcome)).Inc()
	m.attempts.Add(float64(ans.Attempts))
	m.latency.Observe(ans.Latency.Seconds())
}

func (m *Metrics) observeRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

var corpusDocumentsDesc = prometheus.NewDesc(
	"travelrag_corpus_documents",
	"Documents in the loaded corpus, by category.",
	[]string{"category"}, nil,
)

// corpusCollector reports the live corpus, which may be swapped by the watcher.
type corpusCollector struct {
	stats func() corpus.Stats
}

func (c *corpusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- corpusDocumentsDesc
}

func (c *corpusCollector) Collect(ch chan<- prometheus.Metric) {
	for cat, n := range c.stats().Categories {
		ch <- prometheus.MustNewConstMetric(corpusDocumentsDesc, prometheus.GaugeValue, float64(n), string(cat))
	}
}
