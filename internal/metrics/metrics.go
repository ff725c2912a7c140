// Package metrics instruments planners with Prometheus collectors.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"svw.info/cleanbot/internal/domain"
	"svw.info/cleanbot/internal/ports"
)

// Collectors groups the planner metrics so tests can use a private registry.
type Collectors struct {
	Plans     *prometheus.CounterVec
	Expanded  *prometheus.HistogramVec
	Generated *prometheus.HistogramVec
	Duration  *prometheus.HistogramVec
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	nodes := prometheus.ExponentialBuckets(1, 4, 12)
	c := &Collectors{
		Plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cleanbot",
			Name:      "plans_total",
			Help:      "Planning runs by algorithm and outcome (found, exhausted, canceled, error).",
		}, []string{"algorithm", "outcome"}),
		Expanded: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cleanbot",
			Name:      "nodes_expanded",
			Help:      "States expanded per planning run.",
			Buckets:   nodes,
		}, []string{"algorithm"}),
		Generated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cleanbot",
			Name:      "nodes_generated",
			Help:      "Successor states generated per planning run.",
			Buckets:   nodes,
		}, []string{"algorithm"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cleanbot",
			Name:      "plan_duration_seconds",
			Help:      "Wall time per planning run.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"algorithm"}),
	}
	reg.MustRegister(c.Plans, c.Expanded, c.Generated, c.Duration)
	return c
}

// Instrument wraps p so every run is recorded under alg.
func (c *Collectors) Instrument(p ports.Planner, alg domain.Algorithm) ports.Planner {
	return &instrumented{next: p, alg: alg.String(), c: c}
}

type instrumented struct {
	next ports.Planner
	alg  string
	c    *Collectors
}

func (i *instrumented) Plan(ctx context.Context, w *domain.World) ([]domain.Action, bool, ports.Stats, error) {
	path, found, st, err := i.next.Plan(ctx, w)
	outcome := "exhausted"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome = "canceled"
	case err != nil:
		outcome = "error"
	case found:
		outcome = "found"
	}
	i.c.Plans.WithLabelValues(i.alg, outcome).Inc()
	i.c.Expanded.WithLabelValues(i.alg).Observe(float64(st.Expanded))
	i.c.Generated.WithLabelValues(i.alg).Observe(float64(st.Generated))
	i.c.Duration.WithLabelValues(i.alg).Observe(st.Duration.Seconds())
	return path, found, st, err
}
