package output

import (
	"context"
	"errors"
)

// Provider stores the files of a downloaded document.
type Provider interface {
	// Mkdir creates the named directory if it does not exist yet and
	// returns its location.
	Mkdir(ctx context.Context, name string) (string, error)

	Write(ctx context.Context, dir, name string, data []byte) error
}

var (
	ErrInvalidName = errors.New("invalid name")
)
