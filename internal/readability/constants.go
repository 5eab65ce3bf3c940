// Package readability implements a compact, Mozilla-Readability-style
// content scorer: score block-level candidates by text density and
// class/id keyword weight, then return the highest-scoring element as an
// HTML fragment. Grounded on the teacher's internal/readability package,
// trimmed to the single contract its caller needs (tree -> best-candidate
// HTML), rather than the teacher's full DOM-mutating extraction pipeline.
package readability

import "regexp"

// DefaultCharThreshold is the minimum text length of a result whose score
// is not positive (the plain <body> fallback included); shorter such
// results are rejected.
const DefaultCharThreshold = 140

// TagsToScore lists element types eligible for scoring, mirroring the
// teacher's DefaultTagsToScore plus the container tags a candidate needs
// to bubble up to (div/section/article).
var TagsToScore = []string{"p", "pre", "td", "blockquote", "div", "section", "article"}

var (
	// RegexpUnlikelyCandidates flags chrome unlikely to hold article text.
	RegexpUnlikelyCandidates = regexp.MustCompile(`(?i)-ad-|ai2html|banner|breadcrumbs|combx|comment|community|cover-wrap|disqus|extra|footer|gdpr|header|legends|menu|related|remark|replies|rss|shoutbox|sidebar|skyscraper|social|sponsor|supplemental|ad-break|agegate|pagination|pager|popup|yom-remote`)

	// RegexpMaybeCandidate overrides RegexpUnlikelyCandidates when both match.
	RegexpMaybeCandidate = regexp.MustCompile(`(?i)and|article|body|column|content|main|shadow`)

	// RegexpPositive rewards class/id keywords that suggest real content.
	RegexpPositive = regexp.MustCompile(`(?i)article|body|content|entry|hentry|h-entry|main|page|pagination|post|text|blog|story`)

	// RegexpNegative penalizes class/id keywords that suggest chrome.
	RegexpNegative = regexp.MustCompile(`(?i)hidden|^hid$| hid$| hid |^hid |banner|combx|comment|com-|contact|foot|footer|footnote|masthead|media|meta|outbrain|promo|related|scroll|share|shoutbox|sidebar|skyscraper|sponsor|shopping|tags|tool|widget`)
)
