package observability

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const ServiceName = "wordle-bot"

// Config selects logger and metrics behaviour.
type Config struct {
	Environment string
	LogLevel    string
}

// Observability bundles the logger, metrics registry and tracer provider the
// modules are built from.
type Observability struct {
	Logger         *slog.Logger
	Registry       *prometheus.Registry
	Metrics        *PrometheusMetrics
	TracerProvider trace.TracerProvider
}

// Init builds the process-wide observability stack. Tracing uses whatever
// provider is installed globally; without an exporter this is a no-op.
func Init(cfg Config) *Observability {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:         NewLogger(cfg.Environment, cfg.LogLevel),
		Registry:       reg,
		Metrics:        NewPrometheusMetrics(reg),
		TracerProvider: otel.GetTracerProvider(),
	}
}

// Tracer returns a named tracer from the configured provider.
func (o *Observability) Tracer(name string) trace.Tracer {
	return o.TracerProvider.Tracer(ServiceName + "/" + name)
}
