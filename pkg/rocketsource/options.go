package rocketsource

import (
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the production API origin.
	DefaultBaseURL = "https://app.rocketsource.io"
	// DefaultTimeout bounds the wait for response headers unless overridden.
	DefaultTimeout = 30 * time.Second

	defaultUserAgent = "rocketsource-go"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL        string
	apiKey         string
	timeout        time.Duration
	headers        map[string]string
	httpClient     *http.Client
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	userAgent      string
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL overrides the API origin.
func WithBaseURL(u string) Option {
	return func(c *clientConfig) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithAPIKey sets the bearer credential. An empty key sends no
// Authorization header.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithTimeout bounds how long a request waits for response headers. Once
// headers arrive the body is read without a deadline; use the context to
// bound the whole call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTimeoutMillis is WithTimeout expressed in milliseconds.
func WithTimeoutMillis(ms int) Option {
	return WithTimeout(time.Duration(ms) * time.Millisecond)
}

// WithHeaders adds default headers sent on every request. They override the
// client's own headers, including Authorization, and are overridden by
// per-call headers.
func WithHeaders(h map[string]string) Option {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string, len(h))
		}
		maps.Copy(c.headers, h)
	}
}

// WithHTTPClient sets a custom HTTP client. The client is copied. When its
// transport is nil or an *http.Transport without ResponseHeaderTimeout, the
// copy uses a clone of that transport with the configured timeout; any other
// transport, and the client's own Timeout, are left as they are.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *clientConfig) {
		c.tracerProvider = tp
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}
