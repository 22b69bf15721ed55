package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/httpkit/pkg/logger"
)

// LoggerExtractor adds the request ID of the record's context to log records.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return logger.RequestID(id), true
		}
		return slog.Attr{}, false
	}
}
