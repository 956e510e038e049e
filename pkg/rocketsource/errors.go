package rocketsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// unknownErrorMessage is used when neither the body nor the transport
// produced a message.
const unknownErrorMessage = "An unknown error occurred"

// Sentinel errors for errors.Is checks. Every *Error matches the sentinel of
// its Kind.
var (
	// ErrAuthentication matches 401 responses.
	ErrAuthentication = errors.New("authentication failed")
	// ErrAuthorization matches 403 responses.
	ErrAuthorization = errors.New("insufficient permissions")
	// ErrNotFound matches 404 responses.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation matches 400 responses.
	ErrValidation = errors.New("validation failed")
	// ErrRateLimited matches 429 responses.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrServer matches 500, 502, 503 and 504 responses.
	ErrServer = errors.New("server error")
	// ErrTimeout matches requests that got no response within the timeout.
	ErrTimeout = errors.New("request timed out")
)

// ErrorKind classifies an *Error.
type ErrorKind int

// Error kinds.
const (
	KindGeneric ErrorKind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindValidation
	KindRateLimit
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindRateLimit:
		return "rate_limit"
	case KindServer:
		return "server"
	default:
		return "generic"
	}
}

// Error is the single error type returned by every client call. Branch on
// Kind (or use errors.Is with the sentinels) rather than on the message.
type Error struct {
	Kind    ErrorKind
	Message string

	// StatusCode is the HTTP status of the response, or 0 when no response
	// was received.
	StatusCode int

	// FieldErrors maps field names to messages. Never nil for KindValidation.
	FieldErrors map[string][]string

	// RetryAfter is the Retry-After header in seconds for KindRateLimit, or
	// nil when the server did not send a numeric value.
	RetryAfter *int

	// APIError is the decoded error body, when the body was JSON.
	APIError *domain.APIErrorResponse

	// Err is the underlying transport or encoding failure, if any.
	Err error

	// Timeout is set when the request got no response within the timeout.
	Timeout bool
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("rocketsource: %s error (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("rocketsource: %s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying transport failure.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel matching.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrAuthentication:
		return e.Kind == KindAuthentication
	case ErrAuthorization:
		return e.Kind == KindAuthorization
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrRateLimited:
		return e.Kind == KindRateLimit
	case ErrServer:
		return e.Kind == KindServer
	case ErrTimeout:
		return e.Timeout
	}
	return false
}

// RetryAfterDuration returns RetryAfter as a duration and whether it was set.
func (e *Error) RetryAfterDuration() (time.Duration, bool) {
	if e.RetryAfter == nil {
		return 0, false
	}
	return time.Duration(*e.RetryAfter) * time.Second, true
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindGeneric if err is not an *Error.
func KindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return KindGeneric
}

// kindForStatus maps an HTTP status to its error kind.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimit
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return KindServer
	default:
		return KindGeneric
	}
}

// mapError turns a failed exchange into an *Error. status is 0 when no
// response arrived, in which case cause carries the transport failure. It is
// total and never panics: any combination of inputs yields exactly one kind.
func mapError(status int, header http.Header, body []byte, cause error) *Error {
	apiErr := decodeAPIError(body)

	e := &Error{
		Kind:       kindForStatus(status),
		Message:    resolveMessage(status, apiErr, cause),
		StatusCode: status,
		APIError:   apiErr,
		Err:        cause,
		Timeout:    isTimeout(cause),
	}

	switch e.Kind {
	case KindValidation:
		e.FieldErrors = map[string][]string{}
		if apiErr != nil {
			for field, msgs := range apiErr.Errors {
				e.FieldErrors[field] = append([]string(nil), msgs...)
			}
		}
	case KindRateLimit:
		e.RetryAfter = parseRetryAfter(header)
	}

	return e
}

// localError wraps a failure that happened before anything was sent.
func localError(msg string, cause error) *Error {
	return &Error{
		Kind:    KindGeneric,
		Message: fmt.Sprintf("%s: %v", msg, cause),
		Err:     cause,
	}
}

func resolveMessage(status int, apiErr *domain.APIErrorResponse, cause error) string {
	if apiErr != nil && apiErr.Message != "" {
		return apiErr.Message
	}
	if cause != nil && cause.Error() != "" {
		return cause.Error()
	}
	if status != 0 {
		return fmt.Sprintf("request failed with status code %d", status)
	}
	return unknownErrorMessage
}

// decodeAPIError parses the error body. The errors field is decoded
// separately so an unexpected shape there does not hide the message.
func decodeAPIError(body []byte) *domain.APIErrorResponse {
	if len(body) == 0 {
		return nil
	}

	var raw struct {
		Message    string          `json:"message"`
		Error      string          `json:"error"`
		Details    map[string]any  `json:"details"`
		StatusCode int             `json:"statusCode"`
		Errors     json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	apiErr := &domain.APIErrorResponse{
		Message:    raw.Message,
		Error:      raw.Error,
		Details:    raw.Details,
		StatusCode: raw.StatusCode,
	}
	if len(raw.Errors) > 0 {
		var fields map[string][]string
		if err := json.Unmarshal(raw.Errors, &fields); err == nil {
			apiErr.Errors = fields
		}
	}
	return apiErr
}

func parseRetryAfter(header http.Header) *int {
	v := strings.TrimSpace(header.Get("Retry-After"))
	if v == "" {
		return nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return nil
	}
	return &secs
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
