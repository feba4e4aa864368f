package wenku_test

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/adrianliechti/wenku/pkg/transport"
)

// fakeTransport serves canned bodies by url; the query of the request is
// appended in encoded form before the lookup.
type fakeTransport struct {
	mu sync.Mutex

	bodies  map[string]string
	headers map[string]string

	requests []string
}

func (f *fakeTransport) Fetch(ctx context.Context, u string, params url.Values) (*transport.Response, error) {
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	f.mu.Lock()
	f.requests = append(f.requests, u)
	f.mu.Unlock()

	body, ok := f.bodies[u]

	if !ok {
		return nil, &transport.StatusError{URL: u, Status: http.StatusNotFound}
	}

	header := make(http.Header)

	if ct, ok := f.headers[u]; ok {
		header.Set("Content-Type", ct)
	}

	return &transport.Response{
		Status: http.StatusOK,
		Header: header,

		Body: []byte(body),
	}, nil
}
