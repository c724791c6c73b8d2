package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/securekit/errors"
)

// Operation tracks one security operation across a span and metrics.
type Operation struct {
	name    string
	start   time.Time
	span    trace.Span
	metrics *Metrics
}

// StartOperation starts a span named "securekit.<name>" and counts the
// operation as in progress. A nil metrics skips metric recording.
func StartOperation(ctx context.Context, metrics *Metrics, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	ctx, span := StartSpan(ctx, "securekit."+name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(append(attrs, attribute.String(AttrOperation, name))...),
	)
	if metrics != nil {
		metrics.RecordStart(ctx, name)
	}
	return ctx, &Operation{name: name, start: time.Now(), span: span, metrics: metrics}
}

// End finishes the operation. A nil err counts as ok, an error caused by
// the caller's input as rejected, anything else as error.
func (o *Operation) End(ctx context.Context, err error) {
	status := StatusOf(err)
	code := string(errors.CodeOf(err))

	o.span.SetAttributes(attribute.String(AttrStatus, status))
	if err != nil {
		if code != "" {
			o.span.SetAttributes(attribute.String(AttrErrorCode, code))
		}
		o.span.RecordError(err)
		if status == StatusError {
			o.span.SetStatus(codes.Error, err.Error())
		}
	}
	o.span.End()

	if o.metrics != nil {
		o.metrics.RecordEnd(ctx, o.name, status, time.Since(o.start))
		if err != nil {
			if code == "" {
				code = string(errors.ErrCodeInternal)
			}
			o.metrics.RecordError(ctx, o.name, code)
		}
	}
}

// Duration returns the elapsed time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.start)
}

// StatusOf classifies an operation result.
func StatusOf(err error) string {
	if err == nil {
		return StatusOK
	}
	switch errors.CodeOf(err) {
	case "", errors.ErrCodeInternal, errors.ErrCodeCryptoFailure, errors.ErrCodeEntropyUnavailable:
		return StatusError
	default:
		return StatusRejected
	}
}
