// Package clientip resolves the address of the caller behind trusted
// reverse proxies and stores it in the request context for logging.
//
//	ips := clientip.New(clientip.DefaultHeaders...)
//	router.Use(ips.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
package clientip
