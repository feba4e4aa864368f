package wenku

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/adrianliechti/wenku/pkg/batch"
	"github.com/adrianliechti/wenku/pkg/jsonp"
	"github.com/adrianliechti/wenku/pkg/transport"
)

const (
	DefaultURL      = "https://wenku.baidu.com"
	DefaultImageURL = "https://wkretype.bdimg.com"
)

type Client struct {
	transport transport.Transport

	url      string
	imageURL string

	limit    int
	encoding string
}

func New(options ...Option) (*Client, error) {
	c := &Client{
		url:      DefaultURL,
		imageURL: DefaultImageURL,

		limit: batch.DefaultLimit,
	}

	for _, option := range options {
		option(c)
	}

	if c.transport == nil {
		t, err := transport.New()

		if err != nil {
			return nil, err
		}

		c.transport = t
	}

	if c.url == "" || c.imageURL == "" {
		return nil, errors.New("invalid url")
	}

	c.url = strings.TrimRight(c.url, "/")
	c.imageURL = strings.TrimRight(c.imageURL, "/")

	if c.limit < 1 {
		c.limit = batch.DefaultLimit
	}

	return c, nil
}

func (c *Client) fetch(ctx context.Context, u string, params url.Values) (*transport.Response, error) {
	resp, err := c.transport.Fetch(ctx, u, params)

	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}

	return resp, nil
}

func unwrap(source string, data []byte, v any) error {
	if err := jsonp.Unwrap(data, v); err != nil {
		if errors.Is(err, jsonp.ErrEncoding) {
			return &EncodingError{Source: source, Err: err}
		}

		return &ParseError{Source: source, Err: err}
	}

	return nil
}
