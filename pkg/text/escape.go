package text

import (
	"strings"
)

var unescaper = strings.NewReplacer(
	`\x22`, `"`,
	`\\\/`, `/`,
	`\/`, `/`,
)

// Unescape reverts the escaping applied to JSON embedded in single quoted
// script strings: hex encoded quotes and escaped slashes.
func Unescape(s string) string {
	return unescaper.Replace(s)
}
