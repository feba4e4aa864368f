package transport

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/publicsuffix"
)

var _ Transport = &Client{}

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.4 Safari/605.1.15"

// Client is a cookie-bearing HTTP transport. All requests of one Client share
// the same cookie jar so cookies set by the viewer page or the metadata
// endpoint are sent along with later fragment and image requests.
type Client struct {
	client *http.Client

	agent   string
	headers http.Header
}

func New(options ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{
		PublicSuffixList: publicsuffix.List,
	})

	if err != nil {
		return nil, err
	}

	c := &Client{
		client: &http.Client{},

		agent:   DefaultUserAgent,
		headers: make(http.Header),
	}

	for _, option := range options {
		option(c)
	}

	if c.client == nil {
		c.client = &http.Client{}
	}

	client := *c.client

	if client.Jar == nil {
		client.Jar = jar
	}

	base := client.Transport

	if base == nil {
		base = http.DefaultTransport
	}

	client.Transport = otelhttp.NewTransport(base)

	c.client = &client

	return c, nil
}

func (c *Client) Fetch(ctx context.Context, rawURL string, params url.Values) (*Response, error) {
	u, err := url.Parse(rawURL)

	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		values := u.Query()

		for k, v := range params {
			values[k] = v
		}

		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("User-Agent", c.agent)

	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)

		return nil, &StatusError{
			URL:    u.String(),
			Status: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,

		Body: data,
	}, nil
}
