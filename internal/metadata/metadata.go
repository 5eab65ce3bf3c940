// Package metadata implements the Metadata extractor collaborator (spec
// §6): "tree, url, date-params, no_fallback, author_blacklist → metadata
// map". Out of scope for the extraction core itself, but ambient to a
// complete extraction result (§1 lists it among the external collaborators
// referenced only through their interface) — grounded on the teacher's
// internal/extractors package, generalized from its bespoke date-format
// guessing to go-dateparser, and from its single-page-title heuristic to a
// small ranked selector table in the style of extract_element.go.
package metadata

import (
	"bytes"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/extractors"
	"github.com/jrmoran/xtractly/internal/pathexpr"
)

// Result is the metadata map from spec §3's extraction result object,
// restricted to the fields this package fills.
type Result struct {
	Title       string
	Author      string
	Date        time.Time
	URL         string
	Hostname    string
	Description string
	Categories  []string
	Tags        []string
	License     string
	Lang        string
}

// Params gates extraction the way the collaborator interface names:
// AuthorBlacklist suppresses bylines that match a known non-author string
// (press agency bylines, "admin", etc.). NoFallback is accepted but not
// consulted: Extract always runs the full title chain, meta tags through h1.
type Params struct {
	SourceURL       string
	AuthorBlacklist []string
	NoFallback      bool
}

var titleExpressions = []pathexpr.Expression{
	{ID: "og-title", Path: `//meta[@property='og:title']/@content`},
	{ID: "twitter-title", Path: `//meta[@name='twitter:title']/@content`},
	{ID: "title-tag", Path: `//title`},
	{ID: "h1", Path: `//h1`},
}

var authorExpressions = []pathexpr.Expression{
	{ID: "meta-author", Path: `//meta[@name='author']/@content`},
	{ID: "rel-author", Path: `//*[@rel='author']`},
	{ID: "byline-class", Path: `//*[contains(@class,'byline') or contains(@class,'author')]`},
}

var dateExpressions = []pathexpr.Expression{
	{ID: "published-time", Path: `//meta[@property='article:published_time']/@content`},
	{ID: "pubdate", Path: `//meta[@name='pubdate']/@content`},
	{ID: "date-meta", Path: `//meta[@name='date']/@content`},
	{ID: "time-datetime", Path: `//time/@datetime`},
	{ID: "time-tag", Path: `//time`},
}

var descriptionExpressions = []pathexpr.Expression{
	{ID: "og-description", Path: `//meta[@property='og:description']/@content`},
	{ID: "meta-description", Path: `//meta[@name='description']/@content`},
}

var tagExpressions = []pathexpr.Expression{
	{ID: "article-tag", Path: `//meta[@property='article:tag']/@content`},
	{ID: "keywords", Path: `//meta[@name='keywords']/@content`},
}

var licenseExpressions = []pathexpr.Expression{
	{ID: "rel-license", Path: `//*[@rel='license']`},
}

// Extract fills a Result from tree, following the same ranked-selector,
// first-usable-match pattern as the path-expression tables elsewhere in
// this module.
func Extract(tree *html.Node, params Params) Result {
	r := Result{URL: params.SourceURL, Hostname: hostnameOf(params.SourceURL)}

	r.Title = firstText(tree, titleExpressions)
	r.Author = firstAuthor(tree, params.AuthorBlacklist)
	r.Date = firstDate(tree)
	r.Description = firstText(tree, descriptionExpressions)
	r.Tags = allText(tree, tagExpressions)
	r.License = firstHref(tree, licenseExpressions)
	r.Lang = attr(findFirstOf(tree, []pathexpr.Expression{{ID: "html", Path: `//html/@lang`}}), "")

	return r
}

func firstText(tree *html.Node, table []pathexpr.Expression) string {
	for _, expr := range table {
		nodes := pathexpr.Eval(tree, expr)
		if len(nodes) > 0 {
			if t := nodeText(nodes[0]); t != "" {
				return strings.TrimSpace(t)
			}
		}
	}
	return ""
}

func allText(tree *html.Node, table []pathexpr.Expression) []string {
	for _, expr := range table {
		nodes := pathexpr.Eval(tree, expr)
		if len(nodes) == 0 {
			continue
		}
		var out []string
		for _, n := range nodes {
			for _, part := range strings.Split(nodeText(n), ",") {
				if p := strings.TrimSpace(part); p != "" {
					out = append(out, p)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func firstAuthor(tree *html.Node, blacklist []string) string {
	for _, expr := range authorExpressions {
		nodes := pathexpr.Eval(tree, expr)
		for _, n := range nodes {
			name := strings.TrimSpace(nodeText(n))
			if name == "" || isBlacklisted(name, blacklist) {
				continue
			}
			return name
		}
	}
	// The path-expression table only looks at meta tags, rel=author, and
	// byline/author classes. Fall back to the byline extractor's "By "/
	// "Written by " paragraph-prefix heuristic for pages that put the
	// byline in plain body text with no such markup.
	if name := strings.TrimSpace(extractors.ExtractByline(renderHTML(tree))); name != "" {
		if !isBlacklisted(name, blacklist) {
			return name
		}
	}
	return ""
}

// renderHTML serializes tree back to an HTML string for the goquery-based
// extractors collaborators, which operate on markup rather than the parsed
// tree directly.
func renderHTML(tree *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, tree); err != nil {
		return ""
	}
	return buf.String()
}

func isBlacklisted(name string, blacklist []string) bool {
	for _, b := range blacklist {
		if strings.EqualFold(strings.TrimSpace(name), strings.TrimSpace(b)) {
			return true
		}
	}
	return false
}

func firstDate(tree *html.Node) time.Time {
	for _, expr := range dateExpressions {
		nodes := pathexpr.Eval(tree, expr)
		for _, n := range nodes {
			raw := strings.TrimSpace(nodeText(n))
			if raw == "" {
				continue
			}
			if t, ok := parseDate(raw); ok {
				return t
			}
		}
	}
	return time.Time{}
}

// parseDate defers to go-dateparser's multi-locale parser instead of the
// hand-rolled regex cascade the teacher's extract_date.go uses, since the
// retrieval pack now supplies a dedicated date-parsing library.
func parseDate(raw string) (time.Time, bool) {
	parsed, err := dateparser.Parse(nil, raw)
	if err != nil || parsed == nil || parsed.Time.IsZero() {
		return time.Time{}, false
	}
	return parsed.Time, true
}

func firstHref(tree *html.Node, table []pathexpr.Expression) string {
	for _, expr := range table {
		nodes := pathexpr.Eval(tree, expr)
		if len(nodes) > 0 {
			return attrValue(nodes[0], "href")
		}
	}
	return ""
}

func findFirstOf(tree *html.Node, table []pathexpr.Expression) *html.Node {
	for _, expr := range table {
		nodes := pathexpr.Eval(tree, expr)
		if len(nodes) > 0 {
			return nodes[0]
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	if key == "" {
		return strings.TrimSpace(nodeText(n))
	}
	return attrValue(n, key)
}

func attrValue(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return nodeText(n)
}

// nodeText returns an attribute node's own value (htmlquery represents
// @content/@href selections as a synthetic element named after the
// attribute, whose single text child holds the value) or the element's
// flattened text content.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
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

func hostnameOf(rawURL string) string {
	rawURL = strings.TrimPrefix(rawURL, "https://")
	rawURL = strings.TrimPrefix(rawURL, "http://")
	if i := strings.IndexByte(rawURL, '/'); i >= 0 {
		rawURL = rawURL[:i]
	}
	return rawURL
}
