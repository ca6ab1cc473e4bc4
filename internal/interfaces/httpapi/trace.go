package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("ladder-league/internal/interfaces/httpapi")

// Handlers and token verification get their own spans; encoding helpers
// stay inside the request span.
var tracedSpanPrefixes = []string{"httpapi.Handler.", "httpapi.RequireAuth"}

// startSpan only nests under an existing request span, so filtered routes
// such as /healthz never start root spans.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	for _, prefix := range tracedSpanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
