// Package log provides the diagnostic sink used by the persistence backends.
//
// Backends report every flush, drain and data movement at trace level so a
// misbehaving durability protocol can be followed line by line. Nothing in
// the backends depends on a record being emitted; a nil or no-op logger is
// always valid.
//
// # Usage
//
// Use the provided zerolog adapter:
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr).Level(zerolog.TraceLevel))
//	ops, err := pmem.New(pmem.KindClwb, pmem.WithLogger(logger))
//
// Or the no-op logger for tests:
//
//	logger := log.NewNoopLogger()
//
// # Custom Loggers
//
// Implement the Logger interface to forward records elsewhere:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Trace(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
//
// # Version
//
// Current version: 1.1.0
// Minimum compatible version: 1.1.0
//
// See version.go for version constants that can be used programmatically.
package log
