// Package requestid attaches a correlation ID to every HTTP request.
//
// The middleware reuses a valid X-Request-ID header sent by the client or
// generates a UUIDv7, stores it in the request context and echoes it in the
// response header. LoggerExtractor plugs the ID into pkg/logger so every
// record logged with the request context carries it.
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
