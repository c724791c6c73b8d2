// Package logger provides structured logging for securekit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Loggers attach the
// trace and span IDs of the active OpenTelemetry span via WithContext.
// Logs go to stderr by default.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "securekit").WithComponent("secure")
//	log.Warn("generated ephemeral secret", logger.Fields(logger.FieldSource, "random"))
package logger
