package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type Transport interface {
	Fetch(ctx context.Context, url string, params url.Values) (*Response, error)
}

type Response struct {
	Status int
	Header http.Header

	Body []byte
}

type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Status, http.StatusText(e.Status))
}
