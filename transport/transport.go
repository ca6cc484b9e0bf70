// Package transport is the HTTP collaborator boundary for the admin client.
// The core hands it a fully-described request and receives either a status/body
// pair or a transport-level error - classification happens above this package.
package transport

import (
	"context"
	"errors"
	"io"
)

// Request describes one outbound admin API call
type Request struct {
	Method  string
	Path    string
	Params  map[string]string
	Headers map[string]string
	Body    []byte
	// Stream is used instead of Body for opaque byte payloads (file uploads)
	Stream io.Reader
}

// Response is a raw admin API response - the dispatcher decides success/failure
type Response struct {
	Status int
	Body   []byte
}

// Transport delivers a request to the admin API. Implementations own
// cancellation, timeouts, and connection management.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}

// PermanentError marks a transport failure that must not be retried
// (e.g. a request that could not be constructed)
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps err as a non-retryable transport failure
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether the transport signaled a non-retryable condition
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
