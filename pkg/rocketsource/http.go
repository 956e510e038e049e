package rocketsource

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/rocketsource-go/internal/metrics"
	"github.com/donaldgifford/rocketsource-go/pkg/logger"
)

const (
	apiPrefix       = "/api/v3"
	requestIDHeader = "X-Request-ID"
	tracerName      = "github.com/donaldgifford/rocketsource-go"
)

type responseKind int

const (
	responseJSON responseKind = iota
	responseBinary
)

// request describes one API call. It is built per call and never retained.
type request struct {
	method  string
	path    string // relative to apiPrefix
	route   string // path template used for metrics and spans
	query   url.Values
	body    any
	form    *multipartForm
	headers map[string]string
	kind    responseKind
}

// transport is the single chokepoint for every outgoing call. It owns the
// credential and turns every failure into an *Error.
type transport struct {
	baseURL   string
	headers   map[string]string
	userAgent string
	client    *http.Client
	logger    *slog.Logger
	tracer    trace.Tracer

	// apiKey holds a string. Rotation is not coordinated with in-flight
	// calls: a call racing SetAPIKey may send either key.
	apiKey atomic.Value
}

func newTransport(cfg *clientConfig) *transport {
	hc := newHTTPClient(cfg.httpClient, cfg.timeout)

	l := cfg.logger
	if l == nil {
		l = logger.Discard()
	}

	tp := cfg.tracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	t := &transport{
		baseURL:   cfg.baseURL,
		headers:   cfg.headers,
		userAgent: cfg.userAgent,
		client:    hc,
		logger:    l,
		tracer:    tp.Tracer(tracerName),
	}
	t.setAPIKey(cfg.apiKey)
	return t
}

// newHTTPClient bounds the wait for response headers by timeout. The body
// read is not bounded, so a slow export that has started keeps streaming.
// A supplied client is copied, and its transport only gains the header
// timeout when it is an *http.Transport that does not set one.
func newHTTPClient(base *http.Client, timeout time.Duration) *http.Client {
	if base == nil {
		return &http.Client{Transport: headerTimeoutTransport(nil, timeout)}
	}

	hc := *base
	switch rt := hc.Transport.(type) {
	case nil:
		hc.Transport = headerTimeoutTransport(nil, timeout)
	case *http.Transport:
		if rt.ResponseHeaderTimeout == 0 {
			hc.Transport = headerTimeoutTransport(rt, timeout)
		}
	}
	return &hc
}

func headerTimeoutTransport(base *http.Transport, timeout time.Duration) *http.Transport {
	if base == nil {
		base = http.DefaultTransport.(*http.Transport) //nolint:errcheck // stdlib default is always *http.Transport
	}
	tr := base.Clone()
	tr.ResponseHeaderTimeout = timeout
	return tr
}

func (t *transport) setAPIKey(key string) {
	t.apiKey.Store(key)
}

func (t *transport) getAPIKey() string {
	key, _ := t.apiKey.Load().(string)
	return key
}

// do performs r and decodes a JSON response into dst. A nil dst or an empty
// body leaves dst untouched.
func (t *transport) do(ctx context.Context, r *request, dst any) error {
	body, status, err := t.exchange(ctx, r)
	if err != nil {
		return err
	}
	if dst == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &Error{
			Kind:       KindGeneric,
			Message:    "decoding response: " + err.Error(),
			StatusCode: status,
			Err:        err,
		}
	}
	return nil
}

// doBinary performs r and returns the raw response body.
func (t *transport) doBinary(ctx context.Context, r *request) ([]byte, error) {
	r.kind = responseBinary
	body, _, err := t.exchange(ctx, r)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// exchange sends r and returns the body of a 2xx response. Any other outcome
// is returned as an *Error; nothing is retried.
func (t *transport) exchange(ctx context.Context, r *request) ([]byte, int, error) {
	start := time.Now()
	reqID := uuid.NewString()

	ctx, span := t.tracer.Start(ctx, "rocketsource "+r.route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.method),
			attribute.String("http.route", r.route),
			attribute.String("rocketsource.request_id", reqID),
		),
	)
	defer span.End()

	body, status, err := t.send(ctx, r, reqID)

	duration := time.Since(start)
	statusLabel := "none"
	if status != 0 {
		statusLabel = strconv.Itoa(status)
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	metrics.ClientRequestsTotal.WithLabelValues(r.method, r.route, statusLabel).Inc()
	metrics.ClientRequestDuration.WithLabelValues(r.method, r.route).Observe(duration.Seconds())

	t.logger.DebugContext(ctx, "request",
		"method", r.method,
		"route", r.route,
		"status", status,
		"duration_ms", duration.Milliseconds(),
		"request_id", reqID,
	)

	if err != nil {
		metrics.ClientErrorsTotal.WithLabelValues(err.Kind.String()).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Kind.String())
		return nil, status, err
	}
	return body, status, nil
}

func (t *transport) send(ctx context.Context, r *request, reqID string) ([]byte, int, *Error) {
	u := t.baseURL + apiPrefix + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var (
		bodyReader  io.Reader = http.NoBody
		contentType string
	)
	switch {
	case r.form != nil:
		data, ct, err := r.form.encode()
		if err != nil {
			return nil, 0, localError("encoding multipart body", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = ct
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, 0, localError("marshaling request body", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, bodyReader)
	if err != nil {
		return nil, 0, localError("creating request", err)
	}

	req.Header.Set("Accept", "application/json")
	if r.kind == responseBinary {
		req.Header.Set("Accept", "*/*")
	}
	ua := t.userAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set(requestIDHeader, reqID)
	if key := t.getAPIKey(); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	if contentType != "" && r.form == nil {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	// The multipart boundary must match the encoded body.
	if r.form != nil {
		req.Header.Set("Content-Type", contentType)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, 0, mapError(0, nil, nil, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, mapError(resp.StatusCode, resp.Header, nil, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, resp.StatusCode, mapError(resp.StatusCode, resp.Header, respBody, nil)
	}

	return respBody, resp.StatusCode, nil
}
