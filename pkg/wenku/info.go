package wenku

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"

	"github.com/tidwall/gjson"
)

// Info is the document metadata returned by the getdocinfo endpoint:
//
//	{
//	    "doc_id": "080f08af998fcc22bcd10d77",
//	    "docInfo": {"docTitle": "doc title"},
//	    "md5sum": "&md5sum=...&sign=...",
//	    "bcsParam": [{"merge": "0-5863", "zoom": "&png=0-0&jpg=0-0", "page": 1}],
//	    ...
//	}
type Info struct {
	ID string `json:"doc_id"`

	Document DocumentInfo `json:"docInfo"`

	MD5Sum string      `json:"md5sum"`
	Pages  []PageParam `json:"bcsParam"`
}

type DocumentInfo struct {
	Title string `json:"docTitle"`
}

// PageParam describes the image encodings available for one page.
type PageParam struct {
	Page  json.Number `json:"page"`
	Zoom  string      `json:"zoom"`
	Merge string      `json:"merge"`
}

func (i *Info) Title() string {
	return i.Document.Title
}

// Info fetches the metadata of the document id.
func (c *Client) Info(ctx context.Context, id string) (*Info, error) {
	u := c.url + "/api/doc/getdocinfo"

	params := url.Values{}
	params.Set("doc_id", id)
	params.Set("callback", "cb")

	resp, err := c.fetch(ctx, u, params)

	if err != nil {
		return nil, err
	}

	var raw json.RawMessage

	if err := unwrap(u, resp.Body, &raw); err != nil {
		return nil, err
	}

	if !gjson.ParseBytes(raw).IsObject() {
		return nil, &ParseError{Source: u, Err: errors.New("metadata is not an object")}
	}

	var info Info

	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, &ParseError{Source: u, Err: err}
	}

	if info.ID == "" {
		info.ID = id
	}

	return &info, nil
}
