package api

import (
	"net/http"
	"runtime/debug"

	"github.com/signalsfoundry/satlink-simulator/internal/logging"
	"github.com/signalsfoundry/satlink-simulator/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-Id"

const tracerName = "github.com/signalsfoundry/satlink-simulator/internal/api"

// Middleware wraps a handler with an additional behaviour.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares so the first listed runs outermost.
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			h = mw[i](h)
		}
	}
	return h
}

// RequestIDMiddleware ensures a request_id is present on the context,
// sourcing it from the X-Request-Id header if provided, attaches a
// per-request logger annotated with request_id and route, and echoes the ID
// back on the response.
func RequestIDMiddleware(base logging.Logger) Middleware {
	if base == nil {
		base = logging.Noop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if incoming := r.Header.Get(requestIDHeader); incoming != "" {
				ctx = logging.ContextWithRequestID(ctx, incoming)
			}

			route := observability.RoutePattern(r)
			ctx, reqLog := logging.WithRequestLogger(ctx, base.With(logging.String("route", route)))
			ctx = logging.ContextWithLogger(ctx, reqLog)

			w.Header().Set(requestIDHeader, logging.RequestIDFromContext(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RecoveryMiddleware converts handler panics into 500 responses so one bad
// request cannot take the server down.
func RecoveryMiddleware(log logging.Logger) Middleware {
	if log == nil {
		log = logging.Noop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error(r.Context(), "handler panicked",
						logging.String("route", observability.RoutePattern(r)),
						logging.Any("panic", rec),
						logging.String("stack", string(debug.Stack())),
					)
					writeJSON(w, http.StatusInternalServerError, errorBody{
						Error:     "internal server error",
						RequestID: logging.RequestIDFromContext(r.Context()),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// TracingMiddleware opens a server span per request, enriched with the route
// and request ID.
func TracingMiddleware() Middleware {
	tracer := otel.Tracer(tracerName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := observability.RoutePattern(r)
			ctx, span := tracer.Start(r.Context(), "API "+route, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
			}
			if reqID := logging.RequestIDFromContext(ctx); reqID != "" {
				attrs = append(attrs, attribute.String("request_id", reqID))
			}
			span.SetAttributes(attrs...)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
