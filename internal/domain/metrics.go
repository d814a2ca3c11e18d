package domain

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	m "gooze.dev/pkg/mutfix/internal/model"
)

var tracer = otel.Tracer("mutfix.domain")

var (
	candidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutfix",
		Name:      "candidates_total",
		Help:      "Concrete candidates handled by the validation loop, by outcome.",
	}, []string{"project", "status"})

	poolEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutfix",
		Name:      "pool_entries_total",
		Help:      "Compiled candidates added to the patch pool.",
	}, []string{"project"})

	generationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutfix",
		Name:      "generation_failures_total",
		Help:      "Backend invocations that failed or produced no output.",
	}, []string{"backend"})

	mergeSkippedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutfix",
		Name:      "merge_skipped_total",
		Help:      "Mutants left out of the merged streams.",
	}, []string{"project"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mutfix",
		Name:      "stage_duration_seconds",
		Help:      "Wall-clock duration of pipeline stages.",
		Buckets:   prometheus.ExponentialBuckets(0.1, 4, 10),
	}, []string{"stage"})
)

func startStageSpan(ctx context.Context, project string, stage Stage) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mutfix."+string(stage),
		trace.WithAttributes(
			attribute.String("mutfix.project", project),
			attribute.String("mutfix.stage", string(stage)),
		),
	)
}

func startMutantSpan(ctx context.Context, name string, id m.MutantID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("mutfix.mutant", string(id))))
}

func recordCandidate(project string, status m.ValidationStatus) {
	candidatesTotal.WithLabelValues(project, status.String()).Inc()
}
