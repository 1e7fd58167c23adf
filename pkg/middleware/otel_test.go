package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const testTraceParent = "00-4bf92f3577b34da6a3ce929b0e0e4736-00f067aa0ba902b7-01"

func TestOpenTelemetryPropagatesTraceContext(t *testing.T) {
	var seen trace.Span
	r := chi.NewRouter()
	r.Use(OpenTelemetry(
		WithTracerProvider(noop.NewTracerProvider()),
		WithPropagator(propagation.TraceContext{}),
	))
	r.Get("/{page}", func(w http.ResponseWriter, r *http.Request) {
		seen = SpanFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("traceparent", testTraceParent)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, "4bf92f3577b34da6a3ce929b0e0e4736", seen.SpanContext().TraceID().String())
}

func TestOpenTelemetryFilter(t *testing.T) {
	var seen trace.Span
	handler := OpenTelemetry(
		WithTracerProvider(noop.NewTracerProvider()),
		WithPropagator(propagation.TraceContext{}),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/metrics" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SpanFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("traceparent", testTraceParent)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.False(t, seen.SpanContext().IsValid(), "filtered request should not carry a span")
}

func TestOpenTelemetryAttributeExtractor(t *testing.T) {
	called := false
	handler := OpenTelemetry(
		WithTracerName("docs"),
		WithTracerProvider(noop.NewTracerProvider()),
		WithAttributeExtractor(func(r *http.Request) []attribute.KeyValue {
			called = true
			return []attribute.KeyValue{attribute.String("page", r.URL.Path)}
		}),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSpanFromContextWithoutSpan(t *testing.T) {
	span := SpanFromContext(context.Background())
	require.NotNil(t, span)
	assert.False(t, span.SpanContext().IsValid())
}

func TestStartSpanAndRecordError(t *testing.T) {
	assert.NotPanics(t, func() {
		ctx, span := StartSpan(context.Background(), "render", attribute.String("page", "index"))
		RecordError(ctx, errors.New("boom"))
		RecordError(ctx, nil)
		span.End()
	})
}
