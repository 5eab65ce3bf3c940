// Package density implements the Link-Density Pruner (spec §4.5), grounded
// on the teacher's internal/simplifiers/content_density.go link-density
// ratio test, generalized from a readability content scorer into a
// collect-then-delete boilerplate remover.
package density

import (
	"strings"

	"golang.org/x/net/html"
)

// Thresholds controls when a subtree is flagged as link-dense boilerplate.
type Thresholds struct {
	// MaxTextRatio flags a node whose anchor text length divided by total
	// text length exceeds this ratio.
	MaxTextRatio float64
	// MaxAnchorCount flags a node with at least this many anchors when its
	// text is short.
	MaxAnchorCount int
	// ShortTextLength is the "short text" bound used alongside
	// MaxAnchorCount.
	ShortTextLength int
}

// DefaultThresholds matches the ratio the teacher's content_density.go uses
// for its own link-density component of the content score.
func DefaultThresholds() Thresholds {
	return Thresholds{MaxTextRatio: 0.5, MaxAnchorCount: 3, ShortTextLength: 120}
}

// Prune removes, from tree, every element tagged targetTag whose
// link-density test flags it. When backtracking is true (used for div),
// it additionally groups non-flagged short, repeated link-list text and
// deletes any group occurring 3+ times with length in (0, 100) — spec
// §4.5's "repeated short nav items" rule.
func Prune(tree *html.Node, targetTag string, th Thresholds, backtracking bool) {
	candidates := collect(tree, targetTag)

	toDelete := map[*html.Node]bool{}
	shortTextGroups := map[string][]*html.Node{}

	for _, n := range candidates {
		flagged, shortAuxText := linkDensityTest(n, th)
		if flagged {
			toDelete[n] = true
			continue
		}
		if backtracking && shortAuxText != "" {
			shortTextGroups[shortAuxText] = append(shortTextGroups[shortAuxText], n)
		}
	}

	if backtracking {
		for text, group := range shortTextGroups {
			if len(group) >= 3 && len(text) > 0 && len(text) < 100 {
				for _, n := range group {
					toDelete[n] = true
				}
			}
		}
	}

	deduped := make([]*html.Node, 0, len(toDelete))
	for n := range toDelete {
		deduped = append(deduped, n)
	}
	for _, n := range deduped {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// linkDensityTest reports whether n is boilerplate by link density, and (for
// non-flagged nodes) its trimmed text when that text is short enough to be
// a backtracking candidate (empty string otherwise).
func linkDensityTest(n *html.Node, th Thresholds) (flagged bool, shortAuxText string) {
	totalText := textLength(n)
	anchorText, anchorCount := anchorStats(n)

	if totalText == 0 {
		return anchorCount > 0, ""
	}

	ratio := float64(anchorText) / float64(totalText)
	if ratio > th.MaxTextRatio {
		return true, ""
	}
	if totalText <= th.ShortTextLength && anchorCount >= th.MaxAnchorCount {
		return true, ""
	}

	if totalText > 0 && totalText < th.ShortTextLength && anchorCount > 0 {
		return false, strings.TrimSpace(text(n))
	}
	return false, ""
}

func collect(tree *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && matchesTag(n.Data, tag) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tree)
	return out
}

// matchesTag accepts both the pre-conversion HTML tag ("div") and its
// post-conversion vocabulary equivalent, since the pruner runs at several
// pipeline stages relative to the Tag Converter.
func matchesTag(data, tag string) bool {
	if data == tag {
		return true
	}
	switch tag {
	case "list":
		return data == "ul" || data == "ol"
	case "p":
		return data == "p"
	case "head":
		return data == "h1" || data == "h2" || data == "h3" || data == "h4" || data == "h5" || data == "h6"
	}
	return false
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func textLength(n *html.Node) int {
	return len(strings.TrimSpace(text(n)))
}

func anchorStats(n *html.Node) (textLen, count int) {
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "a" || node.Data == "ref") {
			count++
			textLen += len(strings.TrimSpace(text(node)))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return textLen, count
}

// TableIsBoilerplate applies the table-specific link-density test the
// Candidate Selector step 4 calls for ("drop tables whose own link-density
// test flags them as boilerplate").
func TableIsBoilerplate(table *html.Node, th Thresholds) bool {
	flagged, _ := linkDensityTest(table, th)
	return flagged
}
