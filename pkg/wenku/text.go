package wenku

import (
	"context"
	"errors"
	"strings"

	"github.com/adrianliechti/wenku/pkg/batch"
	"github.com/adrianliechti/wenku/pkg/text"
)

type fragment struct {
	Body []text.Word `json:"body"`
}

// Text downloads the text layer of the document id and reassembles it.
// Documents without text layer return ErrNoText.
func (c *Client) Text(ctx context.Context, id string) (string, error) {
	urls, err := c.TextURLs(ctx, id)

	if err != nil {
		return "", err
	}

	var b strings.Builder

	i := 0

	for data, err := range batch.Fetch(ctx, c.transport, urls, c.limit) {
		if err != nil {
			return "", &NetworkError{URL: urls[i], Err: err}
		}

		var f fragment

		if err := unwrap(urls[i], data, &f); err != nil {
			return "", err
		}

		b.WriteString(text.Assemble(f.Body))

		i++
	}

	return b.String(), nil
}

// TextURLs reads the text fragment urls of the document id from its viewer
// page.
func (c *Client) TextURLs(ctx context.Context, id string) ([]string, error) {
	u := c.url + "/view/" + id

	resp, err := c.fetch(ctx, u, nil)

	if err != nil {
		return nil, err
	}

	page, err := decodePage(resp.Body, resp.Header.Get("Content-Type"), c.encoding)

	if err != nil {
		return nil, &EncodingError{Source: u, Err: err}
	}

	urls, err := parseViewer(page)

	if err != nil {
		var perr *ParseError

		if errors.As(err, &perr) {
			perr.Source = u
		}

		return nil, err
	}

	return urls, nil
}
