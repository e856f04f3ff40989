package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	requestCounter otelmetric.Int64Counter
	submitDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	requestCounter, _ := meter.Int64Counter(
		"wizard.requests",
		otelmetric.WithDescription("Number of wizard requests handled"),
	)

	submitDuration, _ := meter.Float64Histogram(
		"wizard.submit.duration",
		otelmetric.WithDescription("Upstream submission duration"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:  provider,
		meter:          meter,
		requestCounter: requestCounter,
		submitDuration: submitDuration,
	}
}

func (o *Observability) RecordRequest(ctx context.Context, route, status string) {
	if o.requestCounter != nil {
		o.requestCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("route", route),
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordSubmitDuration(ctx context.Context, duration time.Duration, outcome string) {
	if o.submitDuration != nil {
		o.submitDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) Shutdown() {
	if o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		o.meterProvider.Shutdown(ctx)
	}
}
