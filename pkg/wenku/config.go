package wenku

import (
	"github.com/adrianliechti/wenku/pkg/transport"
)

type Option func(*Client)

func WithTransport(t transport.Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

func WithImageURL(url string) Option {
	return func(c *Client) {
		c.imageURL = url
	}
}

func WithConcurrency(limit int) Option {
	return func(c *Client) {
		c.limit = limit
	}
}

// WithEncoding overrides the charset detection for viewer pages, e.g. "gbk".
func WithEncoding(label string) Option {
	return func(c *Client) {
		c.encoding = label
	}
}
