package logger

import (
	"time"

	"github.com/kbukum/securekit/errors"
)

// Standard field key constants for structured logging.
// Secrets, passwords, plaintexts and tokens never appear under any key.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldUserID    = "user_id"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldErrorCode = "error_code"
	FieldDuration  = "duration_ms"
	FieldAlgorithm = "algorithm"
	FieldSource    = "source"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("operation", "encrypt", "bytes", 42))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed. The error code
// is included when err carries one.
func ErrorFields(op string, err error) map[string]interface{} {
	fields := map[string]interface{}{
		FieldOperation: op,
		FieldError:     err.Error(),
	}
	if code := errors.CodeOf(err); code != "" {
		fields[FieldErrorCode] = string(code)
	}
	return fields
}

// DurationFields creates fields for a timed operation.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldOperation: op,
		FieldDuration:  d.Milliseconds(),
	}
}
