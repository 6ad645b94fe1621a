package logger

import (
	"github.com/rs/zerolog"
)

// MeshLogger adapts a zerolog.Logger to the agentmesh logging.Logger
// interface so framework internals log through the application's stack.
// Args follow the slog convention of alternating key/value pairs.
type MeshLogger struct {
	logger zerolog.Logger
}

// NewMeshLogger creates a framework logger backed by zerolog
func NewMeshLogger(logger zerolog.Logger) *MeshLogger {
	return &MeshLogger{logger: logger}
}

// Debug logs a debug message
func (m *MeshLogger) Debug(msg string, args ...any) {
	m.emit(m.logger.Debug(), msg, args)
}

// Info logs an informational message
func (m *MeshLogger) Info(msg string, args ...any) {
	m.emit(m.logger.Info(), msg, args)
}

// Warn logs a warning message
func (m *MeshLogger) Warn(msg string, args ...any) {
	m.emit(m.logger.Warn(), msg, args)
}

// Error logs an error message
func (m *MeshLogger) Error(msg string, args ...any) {
	m.emit(m.logger.Error(), msg, args)
}

func (m *MeshLogger) emit(ev *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	ev.Msg(msg)
}
