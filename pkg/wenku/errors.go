package wenku

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks expected absences caused by user input or by the
	// document type. Callers report it as a warning.
	ErrNotFound = errors.New("not found")

	ErrNoID   = fmt.Errorf("%w: no document id in input", ErrNotFound)
	ErrNoText = fmt.Errorf("%w: no extractable text", ErrNotFound)
)

// ParseError reports a malformed JSONP, JSON or embedded script payload.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return "parse " + e.Source + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EncodingError reports a payload that could not be decoded to text.
type EncodingError struct {
	Source string
	Err    error
}

func (e *EncodingError) Error() string {
	return "decode " + e.Source + ": " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return "fetch " + e.URL + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
