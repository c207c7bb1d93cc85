package gateway

import (
	"context"
	"errors"
	"log/slog"

	"drivefood/internal/core/domain/model/kernel"
	"drivefood/internal/core/domain/model/payment"
	"drivefood/internal/core/ports"
	"drivefood/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "drivefood/internal/adapters/out/gateway"

var _ ports.PaymentGateway = (*Traced)(nil)

// Traced decorates a gateway with spans, logs and call metrics.
type Traced struct {
	inner   ports.PaymentGateway
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics gatewayMetrics
}

type Option func(*Traced)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Traced) {
		t.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(t *Traced) {
		t.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(t *Traced) {
		t.metrics = newGatewayMetrics(m)
	}
}

func NewTraced(inner ports.PaymentGateway, opts ...Option) *Traced {
	t := &Traced{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.Default(),
		metrics: newGatewayMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	if t.tracer == nil {
		t.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	t.logger = t.logger.With("component", "payment-gateway")
	return t
}

func (t *Traced) Initiate(ctx context.Context, orderID kernel.UUID, amount kernel.Money) (string, error) {
	ctx, span := t.tracer.Start(ctx, "PaymentGateway.Initiate", trace.WithAttributes(
		attribute.String("order.id", orderID.String()),
		attribute.String("payment.amount", amount.String()),
	))
	defer span.End()

	ref, err := t.inner.Initiate(ctx, orderID, amount)
	t.metrics.record(ctx, "initiate", err)
	if err != nil {
		return "", t.handleError(ctx, span, err, "payment initiation failed", slog.String("order.id", orderID.String()))
	}

	span.SetAttributes(attribute.String("payment.intent", ref))
	t.logger.InfoContext(ctx, "payment intent issued", slog.String("order.id", orderID.String()), slog.String("intent", ref))
	return ref, nil
}

func (t *Traced) Verify(ctx context.Context, intentRef string, receipt payment.Receipt) (payment.Verification, error) {
	ctx, span := t.tracer.Start(ctx, "PaymentGateway.Verify", trace.WithAttributes(
		attribute.String("payment.intent", intentRef),
		attribute.String("payment.id", receipt.PaymentID()),
	))
	defer span.End()

	v, err := t.inner.Verify(ctx, intentRef, receipt)
	t.metrics.record(ctx, "verify", err)
	if err != nil {
		return payment.Verification{}, t.handleError(ctx, span, err, "payment verification failed", slog.String("intent", intentRef))
	}

	span.SetAttributes(attribute.Bool("payment.authentic", v.Authentic), attribute.Bool("payment.replay", v.Replay))
	t.logger.InfoContext(ctx, "receipt verified",
		slog.String("intent", intentRef),
		slog.Bool("authentic", v.Authentic),
		slog.Bool("replay", v.Replay),
	)
	return v, nil
}

func (t *Traced) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, slog.String("error", err.Error()))
	t.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	return err
}

type gatewayMetrics struct {
	calls metric.Int64Counter
}

func newGatewayMetrics(m metric.Meter) gatewayMetrics {
	if m == nil {
		return gatewayMetrics{}
	}
	calls, _ := m.Int64Counter("payment.gateway.calls", metric.WithDescription("Payment gateway calls by operation and result"))
	return gatewayMetrics{calls: calls}
}

func (m gatewayMetrics) record(ctx context.Context, operation string, err error) {
	if m.calls == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrGatewayTimeout), errors.Is(err, context.DeadlineExceeded):
		result = "timeout"
	default:
		result = "error"
	}
	m.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("result", result),
	))
}
