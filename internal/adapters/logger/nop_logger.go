package logger

import "github.com/baditaflorin/go_range_normalizer/internal/ports"

// NopLogger discards everything. Normalizers are pure, so library callers that
// do not ask for logging get this one.
type NopLogger struct{}

// NewNopLogger returns a logger that drops all messages.
func NewNopLogger() ports.Logger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Close() error                 { return nil }
