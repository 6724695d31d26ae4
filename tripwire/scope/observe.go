package scope

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nevware21/tripwire-go/tripwire/log"
)

// FailureEventName is the event name used when recording assertion
// failures on spans.
const FailureEventName = "tripwire.assertion.failed"

// observeFailure emits the failure to the attached logger and, when the
// context carries a recording span, as a span event. Diagnostics never
// alter the assertion outcome.
func (c *Context) observeFailure(kind, msg, id string) {
	c.logger.Log(c.ctx, log.LevelError, "assertion failed",
		log.String("kind", kind),
		log.String("message", msg),
		log.String("failure_id", id),
		log.String("path", c.pathString()),
	)

	span := trace.SpanFromContext(c.ctx)
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("assertion.kind", kind),
		attribute.String("assertion.message", msg),
		attribute.String("assertion.id", id),
		attribute.String("assertion.actual", c.cfg.Format(c.value)),
	}

	if path := c.pathString(); path != "" {
		attrs = append(attrs, attribute.String("assertion.path", path))
	}

	span.AddEvent(FailureEventName, trace.WithAttributes(attrs...))
	span.SetStatus(codes.Error, "assertion failed")
}
