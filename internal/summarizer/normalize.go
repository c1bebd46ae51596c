package summarizer

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^A-Z0-9]+`)

// NormalizeKey reduces a party name to the key used for alias matching:
// upper-cased with every character outside A-Z0-9 removed. Empty input
// yields the empty string.
func NormalizeKey(s string) string {
	return nonAlnumRe.ReplaceAllString(strings.ToUpper(s), "")
}
