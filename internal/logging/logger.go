package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// New builds the process logger. Development gets a human-readable console
// writer with caller info, everything else gets JSON lines on stdout.
func New(component string, isDevelopment bool) zerolog.Logger {
	return newWithWriter(os.Stdout, component, isDevelopment)
}

// NewCLI builds a logger for interactive tools: console output on stderr,
// warnings and above only.
func NewCLI(component string) zerolog.Logger {
	return newWithWriter(os.Stderr, component, true).Level(zerolog.WarnLevel)
}

func newWithWriter(w io.Writer, component string, isDevelopment bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if isDevelopment {
		return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Caller().
			Str("component", component).
			Logger()
	}
	return zerolog.New(w).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

// WithContext decorates logger with the trace and span ids of the active span, if any.
func WithContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return logger
	}
	return logger.With().
		Str("traceId", span.SpanContext().TraceID().String()).
		Str("spanId", span.SpanContext().SpanID().String()).
		Logger()
}
