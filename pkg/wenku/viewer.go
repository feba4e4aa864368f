package wenku

import (
	"cmp"
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/wenku/pkg/text"

	"github.com/dop251/goja"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var (
	pageDataPattern = regexp.MustCompile(`var\s+pageData\s*=\s*(\{.*\})`)
	htmlURLsPattern = regexp.MustCompile(`WkInfo\.htmlUrls\s*=\s*'((?:[^'\\]|\\.)*)'`)
)

var htmlURLsPaths = []string{
	"readerInfo2019.htmlUrls",
	"readerInfo.htmlUrls",
	"htmlUrls",
}

const (
	scriptTimeout  = time.Second
	maxLiteralCuts = 16
)

// decodePage converts the viewer page to UTF-8. The label overrides the
// charset announced by the Content-Type header or the page itself.
func decodePage(body []byte, contentType, label string) (string, error) {
	var enc encoding.Encoding

	if label != "" {
		e, err := htmlindex.Get(label)

		if err != nil {
			return "", err
		}

		enc = e
	} else {
		enc, _, _ = charset.DetermineEncoding(body, contentType)
	}

	data, err := enc.NewDecoder().Bytes(body)

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// parseViewer extracts the ordered text fragment urls from a viewer page.
// Two page shapes are known: a `var pageData = {...}` object carrying
// readerInfo2019.htmlUrls, and a direct `WkInfo.htmlUrls = '...'`
// assignment with escaped quotes. The second shape is tried whenever the
// first is missing or unusable.
func parseViewer(page string) ([]string, error) {
	src := scripts(page)

	var parseErr error

	if loc := pageDataPattern.FindStringSubmatchIndex(src); loc != nil {
		value, err := htmlURLsFromPageData(src[loc[2]:], src[loc[2]:loc[3]])

		if err != nil {
			parseErr = &ParseError{Source: "pageData", Err: err}
		}

		if err == nil && value != "" {
			urls, err := parseHTMLURLs(value)

			var perr *ParseError

			if !errors.As(err, &perr) {
				return urls, err
			}

			parseErr = err
		}
	}

	if m := htmlURLsPattern.FindStringSubmatch(src); m != nil {
		return parseHTMLURLs(text.Unescape(m[1]))
	}

	if parseErr != nil {
		return nil, parseErr
	}

	return nil, ErrNoText
}

// scripts returns the contents of all script elements of the page, or the
// page itself when it has none.
func scripts(page string) string {
	z := html.NewTokenizer(strings.NewReader(page))

	var b strings.Builder

	var found bool
	var inScript bool

	for {
		switch z.Next() {
		case html.ErrorToken:
			if !found {
				return page
			}

			return b.String()

		case html.StartTagToken:
			name, _ := z.TagName()
			inScript = string(name) == "script"

			if inScript {
				found = true
			}

		case html.EndTagToken:
			inScript = false

		case html.TextToken:
			if inScript {
				b.Write(z.Text())
				b.WriteString("\n")
			}
		}
	}
}

// htmlURLsFromPageData reads the htmlUrls value of the pageData object. src
// is the script from the opening brace on; literal is the longest brace
// delimited candidate on that line, used when src does not start with JSON.
func htmlURLsFromPageData(src, literal string) (string, error) {
	var data string
	var raw json.RawMessage

	if err := json.NewDecoder(strings.NewReader(src)).Decode(&raw); err == nil {
		data = string(raw)
	} else {
		val, err := evaluateLiteral(literal)

		if err != nil {
			return "", err
		}

		data = val
	}

	for _, path := range htmlURLsPaths {
		r := gjson.Get(data, path)

		if !r.Exists() {
			continue
		}

		if r.Type == gjson.String {
			return r.String(), nil
		}

		return r.Raw, nil
	}

	return "", nil
}

// evaluateLiteral evaluates literal, cutting it back to the previous closing
// brace while it does not parse, so statements following the object on the
// same line are dropped.
func evaluateLiteral(literal string) (string, error) {
	var err error

	for range maxLiteralCuts {
		var val string

		if val, err = evaluate(literal); err == nil {
			return val, nil
		}

		i := strings.LastIndex(literal[:len(literal)-1], "}")

		if i < 0 {
			break
		}

		literal = literal[:i+1]
	}

	return "", err
}

// evaluate runs a script object literal that is not strict JSON, e.g. one
// with single quotes or trailing commas, and returns it as JSON.
func evaluate(src string) (string, error) {
	vm := goja.New()

	timer := time.AfterFunc(scriptTimeout, func() {
		vm.Interrupt("timeout")
	})

	defer timer.Stop()

	val, err := vm.RunString("JSON.stringify(" + src + ")")

	if err != nil {
		return "", err
	}

	s, ok := val.Export().(string)

	if !ok {
		return "", errors.New("pageData is not an object")
	}

	return s, nil
}

// parseHTMLURLs reads the pageLoadUrl list from an htmlUrls value like
// {"json":[{"pageIndex":1,"pageLoadUrl":"https://..."}]}. A list value is
// used by documents without text layer.
func parseHTMLURLs(value string) ([]string, error) {
	if !gjson.Valid(value) {
		return nil, &ParseError{Source: "htmlUrls", Err: errors.New("invalid json")}
	}

	r := gjson.Parse(value)

	if r.IsArray() {
		return nil, ErrNoText
	}

	type item struct {
		index int64
		url   string
	}

	var items []item

	for _, v := range r.Get("json").Array() {
		url := v.Get("pageLoadUrl").String()

		if url == "" {
			continue
		}

		items = append(items, item{
			index: v.Get("pageIndex").Int(),
			url:   url,
		})
	}

	if len(items) == 0 {
		return nil, ErrNoText
	}

	slices.SortStableFunc(items, func(a, b item) int {
		return cmp.Compare(a.index, b.index)
	})

	urls := make([]string, len(items))

	for i, item := range items {
		urls[i] = item.url
	}

	return urls, nil
}
