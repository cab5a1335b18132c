package engine

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments a running EvaluationModel
// publishes: step counts and error counts are pulled from every loaded
// graph on each Collect call rather than incremented inline, since the
// graphs themselves already keep the authoritative counters.
type Metrics struct {
	model *EvaluationModel

	stepsDesc  *prometheus.Desc
	errorsDesc *prometheus.Desc
	matchDesc  *prometheus.Desc
}

// NewMetrics wraps model as a prometheus.Collector. Register it with a
// registry (or promauto's default) to expose /metrics.
func NewMetrics(model *EvaluationModel) *Metrics {
	return &Metrics{
		model:      model,
		stepsDesc:  prometheus.NewDesc("cep_graph_steps_total", "ConditionNode evaluations performed so far, per query.", []string{"query"}, nil),
		errorsDesc: prometheus.NewDesc("cep_graph_errors_total", "Predicate/operator evaluation errors observed so far, per query.", []string{"query"}, nil),
		matchDesc:  prometheus.NewDesc("cep_graph_root_matches", "Matches currently buffered at the root, per query.", []string{"query"}, nil),
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	ch <- m.stepsDesc
	ch <- m.errorsDesc
	ch <- m.matchDesc
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for i, g := range m.model.Graphs() {
		label := fmt.Sprintf("query-%d", i)
		ch <- prometheus.MustNewConstMetric(m.stepsDesc, prometheus.CounterValue, float64(g.Steps()), label)
		ch <- prometheus.MustNewConstMetric(m.errorsDesc, prometheus.CounterValue, float64(g.Errors()), label)
		ch <- prometheus.MustNewConstMetric(m.matchDesc, prometheus.GaugeValue, float64(len(g.RootMatches())), label)
	}
}
