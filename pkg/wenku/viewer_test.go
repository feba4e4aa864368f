package wenku

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePage(t *testing.T) {
	gbk := "<html><head><meta charset=\"gbk\"></head><title>\xc4\xe3\xba\xc3</title></html>"

	t.Run("meta", func(t *testing.T) {
		page, err := decodePage([]byte(gbk), "", "")
		require.NoError(t, err)
		require.Contains(t, page, "你好")
	})

	t.Run("header", func(t *testing.T) {
		page, err := decodePage([]byte("\xc4\xe3\xba\xc3"), "text/html; charset=GBK", "")
		require.NoError(t, err)
		require.Equal(t, "你好", page)
	})

	t.Run("override", func(t *testing.T) {
		page, err := decodePage([]byte("\xc4\xe3\xba\xc3"), "text/html; charset=utf-8", "gbk")
		require.NoError(t, err)
		require.Equal(t, "你好", page)
	})

	t.Run("utf-8", func(t *testing.T) {
		page, err := decodePage([]byte("<p>你好</p>"), "", "")
		require.NoError(t, err)
		require.Equal(t, "<p>你好</p>", page)
	})

	t.Run("unknown label", func(t *testing.T) {
		_, err := decodePage([]byte("x"), "", "no-such-charset")
		require.Error(t, err)
	})
}

func TestParseViewerPageData(t *testing.T) {
	page := `<script>var pageData = {"readerInfo2019":{"htmlUrls":"{\"json\":[{\"pageLoadUrl\":\"https://bos.test/1.json\"},{\"pageLoadUrl\":\"https://bos.test/2.json\"}]}"}};</script>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json", "https://bos.test/2.json"}, urls)
}

func TestParseViewerScriptLiteral(t *testing.T) {
	page := `<script>var pageData = {readerInfo: {htmlUrls: '{"json":[{"pageLoadUrl":"https://bos.test/1.json"}]}',}, 'title': 'x',};</script>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json"}, urls)
}

func TestParseViewerInlineObject(t *testing.T) {
	page := `<script>var pageData = {"htmlUrls":{"json":[{"pageLoadUrl":"https://bos.test/1.json"}]}};</script>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json"}, urls)
}

func TestParseViewerWkInfo(t *testing.T) {
	page := `<html><script type="text/javascript">
WkInfo.htmlUrls = '{\x22ttf\x22:[],\x22json\x22:[{\x22pageIndex\x22:1,\x22pageLoadUrl\x22:\x22https:\\\/\\\/bos.test\\\/1.json?a=1\x22},{\x22pageIndex\x22:2,\x22pageLoadUrl\x22:\x22https:\\\/\\\/bos.test\\\/2.json\x22}]}';
WkInfo.verify_user_info = {};
</script></html>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json?a=1", "https://bos.test/2.json"}, urls)
}

func TestParseViewerFallback(t *testing.T) {
	// pageData without htmlUrls falls back to the WkInfo assignment
	page := `<script>var pageData = {"title":"x"};
WkInfo.htmlUrls = '{\x22json\x22:[{\x22pageLoadUrl\x22:\x22https:\\\/\\\/bos.test\\\/1.json\x22}]}';</script>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json"}, urls)
}

func TestParseViewerMinified(t *testing.T) {
	tests := map[string]string{
		"json":    `<script>var pageData = {"readerInfo2019":{"htmlUrls":"{\"json\":[{\"pageLoadUrl\":\"https://bos.test/1.json\"}]}"}}; var other = {"a":1};</script>`,
		"literal": `<script>var pageData = {readerInfo: {htmlUrls: '{"json":[{"pageLoadUrl":"https://bos.test/1.json"}]}'}}; var other = {a: 1};</script>`,
	}

	for name, page := range tests {
		t.Run(name, func(t *testing.T) {
			urls, err := parseViewer(page)
			require.NoError(t, err)

			require.Equal(t, []string{"https://bos.test/1.json"}, urls)
		})
	}
}

func TestParseViewerBrokenPageData(t *testing.T) {
	// unusable htmlUrls in pageData falls back to the WkInfo assignment
	page := `<script>var pageData = {"readerInfo2019":{"htmlUrls":"{broken"}};
WkInfo.htmlUrls = '{\x22json\x22:[{\x22pageLoadUrl\x22:\x22https:\\\/\\\/bos.test\\\/1.json\x22}]}';</script>`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json"}, urls)

	_, err = parseViewer(`<script>var pageData = {"readerInfo2019":{"htmlUrls":"{broken"}};</script>`)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseViewerNoScripts(t *testing.T) {
	page := `var pageData = {"readerInfo2019":{"htmlUrls":"{\"json\":[{\"pageLoadUrl\":\"https://bos.test/1.json\"}]}"}};`

	urls, err := parseViewer(page)
	require.NoError(t, err)

	require.Equal(t, []string{"https://bos.test/1.json"}, urls)
}

func TestParseViewerNoText(t *testing.T) {
	tests := map[string]string{
		"absent": `<html><script>var a = 1;</script><p>var pageData = nothing</p></html>`,
		"list":   `<script>var pageData = {"readerInfo2019":{"htmlUrls":"[\"https://bos.test/1.png\"]"}};</script>`,
		"empty":  `<script>var pageData = {"readerInfo2019":{"htmlUrls":"{\"json\":[]}"}};</script>`,
	}

	for name, page := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parseViewer(page)
			require.ErrorIs(t, err, ErrNoText)
		})
	}
}

func TestParseViewerMalformed(t *testing.T) {
	page := `<script>var pageData = {"readerInfo2019": {oops};</script>`

	_, err := parseViewer(page)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
}
