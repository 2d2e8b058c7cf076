package logging

import (
	"context"
	"io"
	"log/slog"
)

// Shared attribute keys so every surface logs the same field names.
const (
	FieldComponent = "component"
	FieldDocument  = "document_id"
	FieldStage     = "stage"
	FieldSession   = "session_id"
)

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func DocumentID(id int64) slog.Attr { return slog.Int64(FieldDocument, id) }

func Stage(stage int) slog.Attr { return slog.Int(FieldStage, stage) }

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithComponent creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

type loggerKey struct{}

// WithContext stores the logger on the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored on the context, or a no-op logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return NewNop()
}
