package errors

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Kind classifies a failed operation so callers can branch on recoverability
// without string-matching messages
type Kind string

const (
	// Authentication indicates an invalid or expired admin/user token
	Authentication Kind = "authentication"
	// PermissionDenied indicates that permission rule evaluation rejected the operation
	PermissionDenied Kind = "permission_denied"
	// Validation indicates a malformed step, query, or argument - caught locally or by the server
	Validation Kind = "validation"
	// NotFound indicates that the referenced id or collection is absent
	NotFound Kind = "not_found"
	// RateLimit indicates that the server signaled throttling
	RateLimit Kind = "rate_limit"
	// TransientServer indicates a server-side failure that is safe for the caller to retry
	TransientServer Kind = "transient_server"
	// Unknown indicates an unrecognized failure shape - raw status/body are preserved for diagnostics
	Unknown Kind = "unknown"
)

// Error is a classified admin API error
type Error struct {
	Kind     Kind            `json:"kind"`
	Code     int             `json:"code,omitempty"`
	Messages []string        `json:"messages,omitempty"`
	Body     json.RawMessage `json:"body,omitempty"`
	Err      error           `json:"err,omitempty"`
}

// Error returns the Error as a json string
func (e *Error) Error() string {
	if e.Kind == "" {
		e.Kind = Unknown
	}
	bits, _ := json.Marshal(e)
	return string(bits)
}

// Unwrap returns the wrapped error (if any)
func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a new error of the given kind
func New(kind Kind, msg string, args ...any) error {
	return &Error{
		Kind:     kind,
		Code:     statusOf(kind),
		Messages: []string{fmt.Sprintf(msg, args...)},
	}
}

// Wrap wraps the given error with the given kind and message and returns a new one.
// A nil input error returns nil.
func Wrap(err error, kind Kind, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		e = &Error{
			Kind: kind,
			Code: statusOf(kind),
			Err:  err,
		}
		if msg != "" {
			e.Messages = append(e.Messages, fmt.Sprintf(msg, args...))
		}
		return e
	}
	if msg != "" {
		e.Messages = append(e.Messages, fmt.Sprintf(msg, args...))
	}
	if e.Err == nil {
		e.Err = err
	}
	if kind != "" && e.Kind == "" {
		e.Kind = kind
	}
	return e
}

// Extract extracts the custom Error from the given error
func Extract(err error) *Error {
	e, ok := err.(*Error)
	if !ok {
		return &Error{
			Kind: Unknown,
			Err:  err,
		}
	}
	return e
}

// Retryable returns true if the error's kind indicates the caller may safely retry.
// The core performs no retries of its own.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch Extract(err).Kind {
	case TransientServer, RateLimit:
		return true
	}
	return false
}

// serverCodes maps the server's structured error codes onto kinds. The structured
// code always wins over the HTTP status when both are present.
var serverCodes = map[string]Kind{
	"AUTH_FAILED":         Authentication,
	"TOKEN_INVALID":       Authentication,
	"TOKEN_EXPIRED":       Authentication,
	"PERMISSION_DENIED":   PermissionDenied,
	"VALIDATION_FAILED":   Validation,
	"PARAM_MALFORMED":     Validation,
	"RECORD_NOT_FOUND":    NotFound,
	"NOT_FOUND":           NotFound,
	"RATE_LIMITED":        RateLimit,
	"RATE_LIMIT_EXCEEDED": RateLimit,
	"SERVER_ERROR":        TransientServer,
}

// Classify turns a non-2xx admin API response into a typed error. The server's
// structured code field ("code", falling back to "type") is consulted first; when it
// is absent or unrecognized the HTTP status range decides. Identical inputs always
// classify identically.
func Classify(status int, body []byte) *Error {
	kind := kindOfStatus(status)
	msg := http.StatusText(status)
	if len(body) > 0 && gjson.ValidBytes(body) {
		code := gjson.GetBytes(body, "code")
		if !code.Exists() {
			code = gjson.GetBytes(body, "type")
		}
		if k, ok := serverCodes[code.String()]; ok {
			kind = k
		}
		if m := gjson.GetBytes(body, "message"); m.Exists() {
			msg = m.String()
		}
	}
	e := &Error{
		Kind: kind,
		Code: status,
	}
	if msg != "" {
		e.Messages = []string{msg}
	}
	if len(body) > 0 && json.Valid(body) {
		e.Body = json.RawMessage(body)
	}
	return e
}

func kindOfStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return Authentication
	case status == http.StatusForbidden:
		return PermissionDenied
	case status == http.StatusNotFound:
		return NotFound
	case status == http.StatusTooManyRequests:
		return RateLimit
	case status >= 500 && status < 600:
		return TransientServer
	case status >= 400 && status < 500:
		return Validation
	default:
		return Unknown
	}
}

func statusOf(kind Kind) int {
	switch kind {
	case Authentication:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case RateLimit:
		return http.StatusTooManyRequests
	case TransientServer:
		return http.StatusInternalServerError
	default:
		return 0
	}
}
