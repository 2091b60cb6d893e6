package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scope = "github.com/JaimeStill/quill"

// StartCompileSpan starts a span for one compile operation.
func StartCompileSpan(ctx context.Context, op, id string) (context.Context, trace.Span) {
	return otel.Tracer(scope).Start(ctx, "compile."+op,
		trace.WithAttributes(
			attribute.String("compile.op", op),
			attribute.String("compile.id", id),
		),
	)
}

// Metrics holds the compile metric instruments.
type Metrics struct {
	Compiles    metric.Int64Counter
	LinesAdded  metric.Int64Counter
	CacheHits   metric.Int64Counter
	CacheMisses metric.Int64Counter
	Duration    metric.Float64Histogram
}

// NewMetrics creates the instruments from the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsFrom(otel.GetMeterProvider())
}

// NewMetricsFrom creates the instruments from mp.
func NewMetricsFrom(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter(scope)
	m := &Metrics{}
	var err error

	m.Compiles, err = meter.Int64Counter("quill.compiles",
		metric.WithDescription("Number of compile operations"))
	if err != nil {
		return nil, err
	}

	m.LinesAdded, err = meter.Int64Counter("quill.lines.added",
		metric.WithDescription("Instruction lines merged into prompts"))
	if err != nil {
		return nil, err
	}

	m.CacheHits, err = meter.Int64Counter("quill.cache.hits",
		metric.WithDescription("Compile results served from cache"))
	if err != nil {
		return nil, err
	}

	m.CacheMisses, err = meter.Int64Counter("quill.cache.misses",
		metric.WithDescription("Compile results computed on a cache miss"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("quill.compile.duration_seconds",
		metric.WithDescription("Compile duration in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Op returns the metric attribute set for op.
func Op(op string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("op", op))
}
