package wenku

import (
	"regexp"
)

var idPattern = regexp.MustCompile(`[0-9a-f]{8,}`)

// ParseID returns the first run of at least eight lowercase hex digits in s,
// e.g. the id part of https://wenku.baidu.com/view/<id>.html.
func ParseID(s string) (string, bool) {
	id := idPattern.FindString(s)
	return id, id != ""
}
