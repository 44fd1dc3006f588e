package api

import (
	"errors"
	"fmt"
)

// Network errors surfaced by the client. Validation failures never reach
// this layer; these cover URL composition, transport, status and decoding.
var (
	ErrInvalidURL           = errors.New("invalid URL")
	ErrInvalidResponse      = errors.New("invalid response")
	ErrAuthenticationFailed = errors.New("authentication failed")
)

// StatusError reports a well-formed HTTP response outside the 2xx range.
// The backend defines no error-body schema, so the status code is all the
// caller gets.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error with code: %d", e.Code)
}

// Is lets errors.Is(err, ErrAuthenticationFailed) match a 401.
func (e *StatusError) Is(target error) bool {
	return target == ErrAuthenticationFailed && e.Code == 401
}

// DecodeError reports a 2xx body that could not be parsed into the expected
// shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding error: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
