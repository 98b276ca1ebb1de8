// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a well-formed X-Request-ID sent by the client or
// generates a UUID, stores it in the request context and echoes it on the
// response. LoggerExtractor feeds the id into the logger so every record
// written while serving the request carries request_id:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	router.Use(requestid.Middleware)
//
// Ids longer than 128 bytes or containing anything other than letters,
// digits, '-' and '_' are replaced.
package requestid
