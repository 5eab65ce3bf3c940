package rewrite

import "strings"

// ShouldHaveSpacePrior implements should_have_space_prior(s) from spec §4.3:
// true unless s starts with a space or one of . ? ! , : ; )
func ShouldHaveSpacePrior(s string) bool {
	if s == "" {
		return true
	}
	r := rune(s[0])
	switch r {
	case ' ', '.', '?', '!', ',', ':', ';', ')':
		return false
	}
	return true
}

// ShouldHaveSpaceNext implements should_have_space_next(s) from spec §4.3:
// true unless s ends with a space or one of [ (
func ShouldHaveSpaceNext(s string) bool {
	if s == "" {
		return true
	}
	r := rune(s[len(s)-1])
	switch r {
	case ' ', '[', '(':
		return false
	}
	return true
}

// joinSpace returns " " when left wants a trailing space and right wants a
// leading space, the single bidirectional predicate §9 asks to unit-test
// over the character-class Cartesian product.
func joinSpace(left, right string) string {
	if left == "" || right == "" {
		return ""
	}
	if ShouldHaveSpaceNext(left) && ShouldHaveSpacePrior(right) {
		return " "
	}
	return ""
}

// normalizeWhitespace collapses internal whitespace runs to a single space
// and trims the ends, the baseline transform the text-node cleaner applies
// before deduplication (spec §3's "text and tail fields... are trimmed").
func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}
