// Package simplifiers implements the paragraph-classifier fallback (spec
// §4.7): a content-density scorer that picks the element most likely to
// hold a page's main prose, used when the readability-style extractor's
// own candidate is too short to trust. Grounded on the teacher's
// internal/simplifiers/content_density.go scoring heuristics, trimmed to
// the single FindMainContentNode entry point its caller uses.
package simplifiers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	contentPatterns = []string{
		"article", "content", "entry", "hentry", "main", "page", "pagination", "post",
		"text", "blog", "story", "body", "section", "readable",
	}

	nonContentPatterns = []string{
		"combx", "comment", "com-", "contact", "foot", "footer", "footnote", "masthead",
		"media", "meta", "outbrain", "promo", "related", "scroll", "shoutbox", "sidebar",
		"sponsor", "shopping", "tags", "tool", "widget", "nav", "menu", "header", "ad",
		"advertisement", "banner", "social", "share", "sharing", "login", "signup",
	}
)

func containsAnyPattern(s string, patterns []string) bool {
	s = strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// linkDensity is the fraction of s's text that sits inside <a> tags.
func linkDensity(s *goquery.Selection) float64 {
	text := s.Text()
	if len(text) == 0 {
		return 0
	}
	return float64(len(s.Find("a").Text())) / float64(len(text))
}

// contentScore rewards text length, paragraph count, and content-pattern
// class/id keywords, then discounts the result by link density so
// navigation-heavy wrappers can't win on raw size alone.
func contentScore(s *goquery.Selection) float64 {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return -1
	}

	score := float64(len(text))
	score += float64(s.Find("p").Length()) * 50

	id, _ := s.Attr("id")
	class, _ := s.Attr("class")
	if containsAnyPattern(id, contentPatterns) || containsAnyPattern(class, contentPatterns) {
		score *= 1.5
	}
	if containsAnyPattern(id, nonContentPatterns) || containsAnyPattern(class, nonContentPatterns) {
		score *= 0.2
	}

	switch goquery.NodeName(s) {
	case "nav", "aside", "footer", "header", "form":
		score *= 0.1
	}

	return score * (1 - linkDensity(s))
}

// candidateSelectors are the elements worth scoring, ranked roughly by how
// often real-world pages mark up their main content with them.
var candidateSelectors = strings.Join([]string{
	"*[id*='content']", "*[id*='article']", "*[id*='main']", "*[id*='body']", "*[id*='entry']",
	"*[class*='content']", "*[class*='article']", "*[class*='main']", "*[class*='body']", "*[class*='entry']",
	"article", "main", "section", "div",
}, ", ")

// FindMainContentNode scores every candidate container in doc and returns
// the highest-scoring one, falling back to <body> when nothing scores
// above the noise floor.
func FindMainContentNode(doc *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	bestScore := -1.0

	doc.Find(candidateSelectors).Each(func(_ int, s *goquery.Selection) {
		if len(strings.TrimSpace(s.Text())) < 100 {
			return
		}
		score := contentScore(s)
		if score > bestScore {
			bestScore = score
			best = s
		}
	})

	if best != nil {
		return best
	}
	return doc.Find("body")
}
