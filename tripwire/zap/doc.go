// Package zap adapts go.uber.org/zap to the engine's log.Logger interface.
//
// When the context carries an active OpenTelemetry span, trace_id and
// span_id fields are appended automatically so assertion diagnostics
// correlate with distributed traces.
package zap
