package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/glintkit/glint/pkg/host"
)

// Default tracer name for glint applications.
const defaultTracerName = "glint"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "glint").
	TracerName string

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(c *host.Ctx) bool

	// AttributeExtractor extracts custom attributes from the context.
	// Called for each traced event.
	AttributeExtractor func(c *host.Ctx) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(c *host.Ctx) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(c *host.Ctx) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every dispatched event.
//
// The middleware:
//   - Creates a span per event named glint.<event-type>
//   - Tags the span with element tag, event type, and attribute name
//   - Records errors and sets span status
//
// The tracer uses the global OpenTelemetry tracer provider. Configure
// it in your main() before starting the server:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) host.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(c *host.Ctx, next func() error) error {
		if config.Filter != nil && !config.Filter(c) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("glint.tag", c.Tag()),
			attribute.String("glint.event_type", c.Event.Type),
			attribute.String("glint.attr", c.Event.Name),
		}
		if c.Session != nil {
			attrs = append(attrs, attribute.Int64("glint.session_id", int64(c.Session.ID())))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(c)...)
		}

		_, span := config.tracer.Start(
			context.Background(),
			"glint."+c.Event.Type,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
