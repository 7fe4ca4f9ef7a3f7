package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const vaultTracerName = "github.com/KasumiMercury/primind-vault/internal/service"

func VaultTracer() trace.Tracer {
	return otel.Tracer(vaultTracerName)
}

func StartStatsSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return VaultTracer().Start(ctx, "vault.stats",
		trace.WithAttributes(
			attribute.String("user_id", userID),
		),
	)
}

func StartUpcomingSpan(ctx context.Context, userID string, limit int) (context.Context, trace.Span) {
	return VaultTracer().Start(ctx, "vault.upcoming",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.Int("upcoming.limit", limit),
		),
	)
}

func StartDispatchSpan(ctx context.Context, from, to time.Time) (context.Context, trace.Span) {
	return VaultTracer().Start(ctx, "vault.alert_dispatch",
		trace.WithAttributes(
			attribute.String("window.start", from.Format(time.RFC3339)),
			attribute.String("window.end", to.Format(time.RFC3339)),
		),
	)
}

func StartAlertSpan(ctx context.Context, itemID string, threshold int) (context.Context, trace.Span) {
	return VaultTracer().Start(ctx, "vault.alert",
		trace.WithAttributes(
			attribute.String("item_id", itemID),
			attribute.Int("alert.threshold", threshold),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return VaultTracer().Start(ctx, "vault.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDispatchResult(span trace.Span, sent, skipped, failed int, err error) {
	span.SetAttributes(
		attribute.Int("dispatch.sent_count", sent),
		attribute.Int("dispatch.skipped_count", skipped),
		attribute.Int("dispatch.failed_count", failed),
	)
	RecordResult(span, err)
}

// RecordResult sets the span status from err.
func RecordResult(span trace.Span, err error) {
	if err != nil {
		RecordError(span, err)
		return
	}
	span.SetStatus(codes.Ok, "")
}

func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// InjectToHTTPRequest writes the trace context of ctx into outbound headers.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func ExtractFromHTTPRequest(req *http.Request) context.Context {
	return otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
}
