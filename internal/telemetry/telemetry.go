// Package telemetry centralizes structured logging and search metrics so
// the engine and its protocol adapters don't reach for fmt/log directly
// for anything beyond the UCI wire protocol itself.
package telemetry

import (
	"context"
	"log"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Logger is the package-wide structured logger. It defaults to a
// go-logr/stdr logger writing to stderr; SetLogger lets an embedder (a
// GUI, a test harness) swap in a different logr.Logger implementation
// without this package caring which one.
var Logger logr.Logger = stdr.New(log.New(os.Stderr, "", log.LstdFlags))

// SetLogger replaces the package-wide logger.
func SetLogger(l logr.Logger) {
	Logger = l
}

// meterProvider defaults to the no-op implementation: recording metrics
// costs nothing until an embedder calls SetMeterProvider with a real
// exporter (otel/sdk/metric, Prometheus, etc.).
var meterProvider metric.MeterProvider = noop.NewMeterProvider()

// SetMeterProvider replaces the OpenTelemetry MeterProvider metrics are
// recorded against.
func SetMeterProvider(p metric.MeterProvider) {
	meterProvider = p
	nodesCounter = newNodesCounter()
}

var nodesCounter = newNodesCounter()

func newNodesCounter() metric.Int64Counter {
	c, _ := meterProvider.Meter("plumchess/engine").Int64Counter("plumchess.search.nodes",
		metric.WithDescription("nodes searched"))
	return c
}

// RecordNodes adds n to the search-nodes counter.
func RecordNodes(n int64) {
	if nodesCounter == nil {
		return
	}
	nodesCounter.Add(context.Background(), n)
}

// InvariantViolation logs a detected internal-consistency failure (a bug,
// never an input-validation failure) at error level with structured
// key-value context, then returns so the caller can decide whether to
// abort.
func InvariantViolation(msg string, keysAndValues ...interface{}) {
	Logger.Error(nil, msg, keysAndValues...)
}

// OptionChanged logs a UCI setoption at info level.
func OptionChanged(name, value string) {
	Logger.Info("option changed", "name", name, "value", value)
}

// OptionIgnored logs a UCI setoption that was rejected rather than applied,
// e.g. a Hash value outside the advertised range.
func OptionIgnored(name, value, reason string) {
	Logger.Info("option ignored", "name", name, "value", value, "reason", reason)
}

// tracerProvider defaults to the no-op implementation; SetTracerProvider
// swaps in a real exporter-backed provider.
var tracerProvider trace.TracerProvider = tracenoop.NewTracerProvider()

// SetTracerProvider replaces the OpenTelemetry TracerProvider spans are
// recorded against.
func SetTracerProvider(p trace.TracerProvider) {
	tracerProvider = p
}

// StartSearchSpan starts a span covering one iterative-deepening search.
// Callers must call the returned func to end it.
func StartSearchSpan(ctx context.Context, fen string) (context.Context, func()) {
	ctx, span := tracerProvider.Tracer("plumchess/engine").Start(ctx, "search")
	span.SetAttributes(attribute.String("fen", fen))
	return ctx, func() { span.End() }
}
