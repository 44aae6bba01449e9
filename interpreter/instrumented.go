package interpreter

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedProcessor records a span and metrics for every command.
type InstrumentedProcessor struct {
	next   Processor
	tracer trace.Tracer

	commands       metric.Int64Counter
	failures       metric.Int64Counter
	clarifications metric.Int64Counter
	duration       metric.Float64Histogram
}

var _ Processor = (*InstrumentedProcessor)(nil)

func NewInstrumentedProcessor(next Processor, tracer trace.Tracer, meter metric.Meter) *InstrumentedProcessor {
	commands, _ := meter.Int64Counter("commands_total",
		metric.WithDescription("Total number of commands processed"))
	failures, _ := meter.Int64Counter("commands_failed_total",
		metric.WithDescription("Total number of commands whose operation failed"))
	clarifications, _ := meter.Int64Counter("clarifications_total",
		metric.WithDescription("Total number of commands that needed clarification"))
	duration, _ := meter.Float64Histogram("command_duration_seconds",
		metric.WithDescription("Time taken to process a command in seconds"))

	return &InstrumentedProcessor{
		next:           next,
		tracer:         tracer,
		commands:       commands,
		failures:       failures,
		clarifications: clarifications,
		duration:       duration,
	}
}

func (p *InstrumentedProcessor) Process(ctx context.Context, text string) Response {
	ctx, span := p.tracer.Start(ctx, "Interpreter.Process")
	defer span.End()

	start := time.Now()
	resp := p.next.Process(ctx, text)

	attrs := metric.WithAttributes(attribute.String("intent", resp.Intent.String()))
	p.commands.Add(ctx, 1, attrs)
	p.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	span.SetAttributes(
		attribute.String("command.intent", resp.Intent.String()),
		attribute.String("command.state", resp.State.String()),
		attribute.String("command.action", string(resp.Action)),
	)

	switch resp.State {
	case OperationFailed:
		p.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, resp.Text)
	case ClarificationNeeded:
		p.clarifications.Add(ctx, 1, attrs)
		span.SetStatus(codes.Ok, "Clarification needed")
	default:
		span.SetStatus(codes.Ok, "Command processed")
	}
	return resp
}
