package log

// NoopLogger implements Logger by discarding all log messages.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Trace(msg string, fields ...Field) {}
func (NoopLogger) Debug(msg string, fields ...Field) {}
func (NoopLogger) Info(msg string, fields ...Field)  {}
func (NoopLogger) Warn(msg string, fields ...Field)  {}
func (NoopLogger) Error(msg string, fields ...Field) {}

// IsNoop reports whether l drops every record. Callers on hot paths use it
// to skip building fields.
func IsNoop(l Logger) bool {
	switch l.(type) {
	case nil, NoopLogger, *NoopLogger:
		return true
	}
	return false
}
