// Package observability provides OpenTelemetry tracing and metrics for
// securekit operations.
//
// Every context operation can be wrapped in an Operation, which opens a
// span and records outcome, duration, and error code metrics:
//
//	ctx, op := observability.StartOperation(ctx, metrics, "verify_password")
//	ok, err := limiter.Verify(ctx, password, stored)
//	op.End(ctx, err)
//
// Export over OTLP/HTTP is owned by the Telemetry component:
//
//	tel := observability.NewTelemetry(cfg, "securekit", version.Version, "production")
//	registry.Register(tel)
//
// Span attributes and metric labels never carry secrets, passwords,
// plaintexts, or tokens.
package observability
