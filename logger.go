package protfeat

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with protfeat-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithStructure adds a structure field to the logger.
func (l *Logger) WithStructure(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("structure", name),
	}
}

// WithKind adds an interaction kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogDetection logs one detector run.
func (l *Logger) LogDetection(ctx context.Context, kind Kind, count int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "detection failed",
			"kind", kind.String(),
			"duration", duration,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "detection completed",
			"kind", kind.String(),
			"count", count,
			"duration", duration,
		)
	}
}

// LogAnalysis logs the outcome of one Analyze call.
func (l *Logger) LogAnalysis(ctx context.Context, r *Report) {
	failed := r.Failed()
	if len(failed) > 0 {
		names := make([]string, len(failed))
		for i, k := range failed {
			names[i] = k.String()
		}
		l.WarnContext(ctx, "analysis completed with failures",
			"structure", r.Structure,
			"residues", r.Residues,
			"failed", names,
			"duration", r.Duration,
		)
	} else {
		l.DebugContext(ctx, "analysis completed",
			"structure", r.Structure,
			"residues", r.Residues,
			"duration", r.Duration,
		)
	}
}

// LogScan logs a batch scan.
func (l *Logger) LogScan(ctx context.Context, total, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "scan completed with failures",
			"total", total,
			"failed", failed,
			"success", total-failed,
		)
	} else {
		l.InfoContext(ctx, "scan completed",
			"count", total,
		)
	}
}
