package jsonp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrInvalid  = errors.New("invalid jsonp")
	ErrEncoding = errors.New("invalid utf-8")
)

var bom = []byte("\xef\xbb\xbf")

// Unwrap strips a callback wrapper like `cb({...})` and decodes the JSON
// between the first '(' and the last ')' into v. Comment noise around the
// call is ignored.
func Unwrap(data []byte, v any) error {
	if !utf8.Valid(data) {
		return ErrEncoding
	}

	data = bytes.TrimPrefix(data, bom)

	l := bytes.IndexByte(data, '(')
	r := bytes.LastIndexByte(data, ')')

	if l < 0 || r < 0 || r <= l {
		return fmt.Errorf("%w: missing callback parentheses", ErrInvalid)
	}

	if err := json.Unmarshal(data[l+1:r], v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

func UnwrapString(s string, v any) error {
	return Unwrap([]byte(s), v)
}
