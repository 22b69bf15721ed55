// Package logger builds *slog.Logger instances for httpkit services and
// provides attribute helpers so that keys stay consistent across packages.
//
// New accepts functional options for output format, level, static
// attributes and context extractors. Extractors run on every record and pull
// request scoped values (such as the request ID) out of the context:
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "csv stream finished", logger.Rows(n), logger.Format("csv"))
//
// NewFromConfig does the same from a Config populated by pkg/config.
//
// Attribute helpers that take an error or an optional value return an empty
// slog.Attr for nil input, which slog drops, so call sites need no nil checks.
package logger
