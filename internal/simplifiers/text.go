package simplifiers

import (
	"regexp"
	"strings"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses runs of whitespace to a single space and
// trims the result.
func NormalizeWhitespace(text string) string {
	if text == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}
