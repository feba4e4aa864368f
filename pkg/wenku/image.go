package wenku

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/adrianliechti/wenku/pkg/batch"
)

type Format string

const (
	FormatJPG Format = "jpg"
	FormatPNG Format = "png"
)

const emptyRange = "0-0"

var zoomPattern = regexp.MustCompile(`png=(\d+-\d+)&jpg=(\d+-\d+)`)

type Image struct {
	Format Format
	URL    string
}

// Page is one downloaded page image named page-<n>.<ext>.
type Page struct {
	Name string
	Data []byte
}

// FormatOf recovers the image format from an image url.
func FormatOf(url string) Format {
	if strings.Contains(url, "o="+string(FormatJPG)) {
		return FormatJPG
	}

	return FormatPNG
}

// Images derives the page image urls from the document metadata, in page
// order. Pages without raster image, like those of word or txt documents,
// yield no url.
func Images(info *Info, host string) []Image {
	var result []Image

	host = strings.TrimRight(host, "/")

	for _, p := range info.Pages {
		m := zoomPattern.FindStringSubmatch(p.Zoom)

		if m == nil {
			continue
		}

		png, jpg := m[1], m[2]

		if png == emptyRange && jpg == emptyRange {
			continue
		}

		format := FormatJPG

		if jpg == emptyRange {
			format = FormatPNG
		}

		url := fmt.Sprintf("%s/retype/zoom/%s?o=%s%s%s", host, info.ID, format, info.MD5Sum, p.Zoom)

		result = append(result, Image{
			Format: format,
			URL:    url,
		})
	}

	return result
}

// Pages downloads all page images of the document. The sequence yields the
// pages in order; a failed download is yielded at its position as
// *NetworkError.
func (c *Client) Pages(ctx context.Context, info *Info) iter.Seq2[Page, error] {
	images := Images(info, c.imageURL)

	urls := make([]string, len(images))

	for i, img := range images {
		urls[i] = img.URL
	}

	return func(yield func(Page, error) bool) {
		i := 0

		for data, err := range batch.Fetch(ctx, c.transport, urls, c.limit) {
			if err != nil {
				err = &NetworkError{URL: urls[i], Err: err}
			}

			page := Page{
				Name: fmt.Sprintf("page-%d.%s", i+1, FormatOf(urls[i])),
				Data: data,
			}

			if !yield(page, err) {
				return
			}

			i++
		}
	}
}
