// Package rocketsource is a client for the RocketSource product-research API.
//
// # Quick Start
//
//	client := rocketsource.New(
//		rocketsource.WithAPIKey(os.Getenv("ROCKETSOURCE_API_KEY")),
//	)
//
//	scans, err := client.Scans.List(ctx, 1, 20)
//	if err != nil {
//		return err
//	}
//	for _, s := range scans.Data {
//		fmt.Println(s.ID, s.Name, s.Status)
//	}
//
// # Configuration
//
// New accepts functional options. The defaults are DefaultBaseURL and
// DefaultTimeout, with no credential and no logging. WithHeaders adds headers
// sent on every call; they take precedence over the client's own headers.
// The timeout covers the wait for response headers only, so a large export
// that has started streaming is not cut off; pass a context with a deadline
// to bound a whole call.
//
// # Services
//
// Client.Scans lists, uploads, exports and manages scans. Client.Convert maps
// product identifiers (UPC, EAN, ISBN, ...) to ASINs and back.
// Client.Eligibility checks inbound eligibility. Every method issues exactly
// one HTTP request; nothing is retried or cached.
//
// # Error Handling
//
// Every failure is returned as an *Error. Branch on its Kind, or use
// errors.Is with the sentinels:
//
//	_, err := client.Scans.Get(ctx, 42)
//	switch {
//	case errors.Is(err, rocketsource.ErrNotFound):
//		// no such scan
//	case errors.Is(err, rocketsource.ErrRateLimited):
//		if e, ok := rocketsource.AsError(err); ok {
//			if d, ok := e.RetryAfterDuration(); ok {
//				time.Sleep(d)
//			}
//		}
//	case errors.Is(err, rocketsource.ErrTimeout):
//		// no response within the timeout
//	}
//
// Validation errors carry per-field messages in FieldErrors.
//
// # Observability
//
// Each request opens an OpenTelemetry client span, records Prometheus
// metrics, and logs one debug line to the logger set with WithLogger.
package rocketsource
