package client

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestError is a transport-level failure: the request never reached the
// storefront or the response never arrived.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// StatusError means the storefront was reached but answered with a
// non-success status. Message carries the server's error body when present.
type StatusError struct {
	Op      string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: storefront returned status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: storefront returned status %d", e.Op, e.Status)
}

// StorefrontMessage exposes the server's error text for display to the
// operator.
func (e *StatusError) StorefrontMessage() string { return e.Message }

// IsNotFound reports whether err is a 404 from the storefront.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == http.StatusNotFound
}
