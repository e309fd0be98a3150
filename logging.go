package telnet

import (
	"log/slog"
)

// logWarn logs a recovered framing violation or negotiation
// disagreement (spec.md §7 classes 1 and 2) — never fatal.
func (e *Engine) logWarn(msg string, args ...any) {
	e.logger.Warn(msg, append([]any{"conn_id", e.ID.String(), "role", e.role.String()}, args...)...)
}

func (e *Engine) logInfo(msg string, args ...any) {
	e.logger.Info(msg, append([]any{"conn_id", e.ID.String(), "role", e.role.String()}, args...)...)
}

func (e *Engine) logDebug(msg string, args ...any) {
	e.logger.Debug(msg, append([]any{"conn_id", e.ID.String(), "role", e.role.String()}, args...)...)
}

// logCritical logs a hard error (spec.md §7 class 3) immediately
// before the connection is torn down.
func (e *Engine) logCritical(msg string, args ...any) {
	e.logger.Error(msg, append([]any{"conn_id", e.ID.String(), "role", e.role.String()}, args...)...)
}

func defaultLogger() *slog.Logger {
	return slog.Default().With("component", "telnet")
}
