// Package observability provides structured logging for the application.
package observability

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogInternalError logs an unexpected failure with the request path that triggered it.
// The error itself is never sent to the client.
func (l *Logger) LogInternalError(path string, err error) {
	l.Error("internal error",
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
}
