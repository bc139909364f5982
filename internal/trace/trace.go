// Package trace provides the step-logging capability injected into pipeline
// stages. Components log at defined step boundaries through an explicit
// Tracer instead of any ambient global state.
package trace

import "go.uber.org/zap"

// Tracer records one named pipeline step with structured fields.
type Tracer interface {
	Step(name string, fields ...zap.Field)
}

// Logger is a Tracer backed by a zap logger.
type Logger struct {
	log *zap.Logger
}

// NewLogger wraps a zap logger as a Tracer.
func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

// NewDevelopment builds a Tracer writing human-readable output to stderr.
// Falls back to Nop if zap cannot initialize.
func NewDevelopment() Tracer {
	log, err := zap.NewDevelopment()
	if err != nil {
		return Nop()
	}
	return NewLogger(log)
}

// Step logs the step at info level.
func (l *Logger) Step(name string, fields ...zap.Field) {
	l.log.Info(name, fields...)
}

type nopTracer struct{}

func (nopTracer) Step(string, ...zap.Field) {}

// Nop returns a Tracer that discards everything. Used in tests and wherever
// step logging is not wanted.
func Nop() Tracer {
	return nopTracer{}
}
