package recipe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedEngine wraps an Applier with a span and metrics per recipe
// application.
type InstrumentedEngine struct {
	next   Applier
	tracer trace.Tracer

	applications metric.Int64Counter
	failedItems  metric.Int64Counter
	duration     metric.Float64Histogram
}

var _ Applier = (*InstrumentedEngine)(nil)

func NewInstrumentedEngine(next Applier, tracer trace.Tracer, meter metric.Meter) *InstrumentedEngine {
	applications, _ := meter.Int64Counter("recipe_applications_total",
		metric.WithDescription("Total number of recipes applied to inventory"))
	failedItems, _ := meter.Int64Counter("ingredients_failed_total",
		metric.WithDescription("Total number of ingredients that could not be fully deducted"))
	duration, _ := meter.Float64Histogram("recipe_application_duration_seconds",
		metric.WithDescription("Time taken to apply a recipe in seconds"))

	return &InstrumentedEngine{
		next:         next,
		tracer:       tracer,
		applications: applications,
		failedItems:  failedItems,
		duration:     duration,
	}
}

func (e *InstrumentedEngine) Apply(ctx context.Context, r Recipe, target, original *int) ApplicationResult {
	ctx, span := e.tracer.Start(ctx, "Engine.Apply")
	defer span.End()

	start := time.Now()
	res := e.next.Apply(ctx, r, target, original)

	attrs := metric.WithAttributes(
		attribute.String("recipe", r.Name),
		attribute.Bool("success", res.Success),
	)
	e.applications.Add(ctx, 1, attrs)
	e.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	for _, f := range res.Failed {
		e.failedItems.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", string(f.Reason))))
	}

	span.SetAttributes(
		attribute.String("recipe.name", r.Name),
		attribute.Int("recipe.servings", res.Servings),
		attribute.Float64("recipe.scaling_factor", res.ScalingFactor),
		attribute.Int("recipe.used", len(res.Used)),
		attribute.Int("recipe.failed", len(res.Failed)),
	)
	if !res.Success {
		span.SetStatus(codes.Error, res.Message)
	} else {
		span.SetStatus(codes.Ok, "Recipe applied")
	}
	return res
}
