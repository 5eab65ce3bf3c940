// Package langfilter implements the Language filter collaborator (spec
// §6/§4.8) as Matches(declaredLang, target, text) → pass/fail; comments
// text is not an input and is not consulted. It prefers
// the document's declared BCP-47 language tag (matched with
// golang.org/x/text/language), falling back to a stopword-overlap heuristic
// when no tag is declared, since the retrieval pack carries no statistical
// language-identification library.
package langfilter

import (
	"strings"

	"golang.org/x/text/language"
)

// Matches reports whether declaredLang (an html lang/meta http-equiv value,
// possibly empty) is compatible with target, a BCP-47 tag. An empty target
// always passes (the filter is disabled).
func Matches(declaredLang, target, text string) bool {
	if target == "" {
		return true
	}
	if declaredLang != "" {
		return tagsMatch(declaredLang, target)
	}
	return stopwordOverlap(text, target) >= minStopwordOverlap
}

func tagsMatch(declared, target string) bool {
	want, err := language.Parse(target)
	if err != nil {
		return true
	}
	got, err := language.Parse(declared)
	if err != nil {
		return true
	}
	wantBase, _ := want.Base()
	gotBase, _ := got.Base()
	return wantBase == gotBase
}

// minStopwordOverlap is the fraction of a sample's words that must land in
// the target language's stopword set for the fallback to accept it.
const minStopwordOverlap = 0.08

// stopwords holds a minimal closed-class word list per language, enough to
// distinguish gross mismatches (an English filter rejecting a Spanish page)
// without pulling in a statistical model. This mirrors how the teacher's own
// internal/simplifiers content scorer leans on small curated word/pattern
// lists rather than machine-learned classifiers.
var stopwords = map[string]map[string]bool{
	"en": setOf("the", "and", "of", "to", "in", "is", "that", "for", "on", "with", "was", "as", "it"),
	"es": setOf("el", "la", "de", "y", "que", "en", "los", "se", "del", "las", "por", "con", "un"),
	"fr": setOf("le", "la", "de", "et", "les", "des", "un", "une", "que", "qui", "dans", "pour"),
	"de": setOf("der", "die", "das", "und", "ist", "ein", "eine", "mit", "auf", "den", "nicht"),
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

func stopwordOverlap(text, target string) float64 {
	base := baseTag(target)
	dict, ok := stopwords[base]
	if !ok {
		return 1 // unknown target language: cannot judge, accept.
	}
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return 0
	}
	hits := 0
	for _, w := range fields {
		w = strings.Trim(w, ".,!?;:\"'()")
		if dict[w] {
			hits++
		}
	}
	return float64(hits) / float64(len(fields))
}

func baseTag(tag string) string {
	if t, err := language.Parse(tag); err == nil {
		if base, _ := t.Base(); base.String() != "" {
			return base.String()
		}
	}
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		return strings.ToLower(tag[:i])
	}
	return strings.ToLower(tag)
}
