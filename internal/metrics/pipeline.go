package metrics

import "github.com/prometheus/client_golang/prometheus"

// Answer pipeline Prometheus metrics.
var (
	AnswersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ordino",
			Name:      "answers_total",
			Help:      "Answers served, by outcome",
		},
		[]string{"outcome"}, // "cached" / "generated" / "no_knowledge"
	)

	AnswerCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ordino",
			Name:      "answer_cache_total",
			Help:      "Answer cache lookups, by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers answer pipeline metrics. Must be
// called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(AnswersTotal)
	prometheus.MustRegister(AnswerCacheTotal)
	pipelineMetricsRegistered = true
}
