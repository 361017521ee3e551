package proverb

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying fetch failures with errors.Is.
var (
	// ErrNetwork marks transport-level failures.
	ErrNetwork = errors.New("network error")

	// ErrServer marks non-success HTTP responses.
	ErrServer = errors.New("server error")

	// ErrDecode marks success responses that are not a valid proverb.
	ErrDecode = errors.New("decode error")
)

// NetworkError is returned when the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "could not reach the proverb service, check your connection and try again"
}

func (e *NetworkError) Unwrap() []error {
	return []error{ErrNetwork, e.Err}
}

// ServerError is returned for any non-2xx response. Message is taken from
// the error body when it has one, and falls back to the status text.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("HTTP error: status %d - %s", e.StatusCode, e.Message)
}

func (e *ServerError) Unwrap() error {
	return ErrServer
}

// DecodeError is returned when a success body cannot be read as a proverb.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding proverb: %v", e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
