package rewrite

import "unicode"

// Deduper is the black-box deduplication collaborator from spec §6
// ("Deduplicator: text → dup/not-dup"), injected so this package never
// depends on internal/dedup's concrete cache.
type Deduper interface {
	IsDuplicateText(text string) bool
}

// TextFlags gates the text-node cleaner's behavior (spec §6's "element,
// flags (comments_fix, deduplicate, preserve_spaces, from_tail), config").
type TextFlags struct {
	CommentsFix    bool
	Deduplicate    bool
	PreserveSpaces bool
	FromTail       bool
}

// CleanText implements the Text-node cleaner collaborator: it normalizes
// whitespace (unless PreserveSpaces), optionally checks the deduplication
// collaborator, and returns the cleaned text plus whether it survived. Empty
// or fully-duplicate text yields ("", false) — the "element or absent"
// outcome from §6.
func CleanText(text string, flags TextFlags, dedup Deduper) (string, bool) {
	cleaned := text
	if !flags.PreserveSpaces {
		cleaned = normalizeWhitespace(cleaned)
	}
	if cleaned == "" {
		return "", false
	}
	if flags.Deduplicate && dedup != nil && dedup.IsDuplicateText(cleaned) {
		return "", false
	}
	return cleaned, true
}

// hasAlpha reports whether s contains at least one letter, the heading
// survival test from spec §4.3 ("emit only if the resulting text has any
// alphabetic character").
func hasAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
