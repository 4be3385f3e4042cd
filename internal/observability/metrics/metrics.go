package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "doctorfinder"

// AssistantMetrics exposes counters/histograms for the chat and ingestion flows.
type AssistantMetrics struct {
	messagesTotal    *prometheus.CounterVec
	emergenciesTotal prometheus.Counter
	llmCallsTotal    *prometheus.CounterVec
	llmLatency       *prometheus.HistogramVec
	searchResults    *prometheus.HistogramVec
	ingestFiles      *prometheus.CounterVec
	ingestRows       prometheus.Gauge
}

func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	m := &AssistantMetrics{
		messagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "messages_total",
			Help:      "User messages handled, by classified intent",
		}, []string{"intent"}),
		emergenciesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "assistant",
			Name:      "emergencies_total",
			Help:      "Messages short-circuited by the emergency detector",
		}),
		llmCallsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "LLM completion calls by provider and outcome",
		}, []string{"provider", "outcome"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "latency_seconds",
			Help:      "Latency of LLM completion calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"provider"}),
		searchResults: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "results",
			Help:      "Number of doctors returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25},
		}, []string{"specialty"}),
		ingestFiles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "files_total",
			Help:      "Source files processed by ingestion, by status",
		}, []string{"status"}),
		ingestRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rows",
			Help:      "Rows written by the most recent ingestion run",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.messagesTotal, m.emergenciesTotal, m.llmCallsTotal, m.llmLatency, m.searchResults, m.ingestFiles, m.ingestRows)
	return m
}

func (m *AssistantMetrics) ObserveMessage(intent string) {
	if m == nil {
		return
	}
	m.messagesTotal.WithLabelValues(intent).Inc()
}

func (m *AssistantMetrics) ObserveEmergency() {
	if m == nil {
		return
	}
	m.emergenciesTotal.Inc()
}

func (m *AssistantMetrics) ObserveLLMCall(provider, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.llmCallsTotal.WithLabelValues(provider, outcome).Inc()
	m.llmLatency.WithLabelValues(provider).Observe(seconds)
}

func (m *AssistantMetrics) ObserveSearch(specialty string, results int) {
	if m == nil {
		return
	}
	if specialty == "" {
		specialty = "any"
	}
	m.searchResults.WithLabelValues(specialty).Observe(float64(results))
}

func (m *AssistantMetrics) ObserveIngestFile(status string) {
	if m == nil {
		return
	}
	m.ingestFiles.WithLabelValues(status).Inc()
}

func (m *AssistantMetrics) SetIngestedRows(n int) {
	if m == nil {
		return
	}
	m.ingestRows.Set(float64(n))
}
