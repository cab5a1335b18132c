package engine

import (
	"time"

	"github.com/arlojames/cepgraph/cep"
)

// Benchmark drives a single graph through a fixed event slice and
// reports wall-clock time plus the graph's step counter, mirroring the
// source's TimeCalcProcessor harness. It calls Clear first so repeated
// calls against the same graph are independent.
func Benchmark(g *Graph, events []*cep.Event) (time.Duration, int64) {
	g.Clear()
	start := time.Now()
	for _, ev := range events {
		g.HandleEvent(ev)
	}
	return time.Since(start), g.Steps()
}
