// Package arbiter implements the Arbiter collaborator (spec §4.7): it
// compares the custom extraction result against a readability-like fallback
// using length heuristics, optionally retries with a paragraph-classifier
// fallback, and as a last resort runs Baseline Extraction over JSON-LD,
// article text, or concatenated block text. Grounded on the teacher's
// internal/readability package (the readability-like extractor) and
// internal/simplifiers/content_density.go (the paragraph-classifier
// extractor), both adapted to emit the module's own etree vocabulary
// instead of goquery/HTML strings.
package arbiter

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/clean"
	"github.com/jrmoran/xtractly/internal/config"
	"github.com/jrmoran/xtractly/internal/convert"
	"github.com/jrmoran/xtractly/internal/etree"
	"github.com/jrmoran/xtractly/internal/htmltree"
	"github.com/jrmoran/xtractly/internal/pathexpr"
	"github.com/jrmoran/xtractly/internal/readability"
	"github.com/jrmoran/xtractly/internal/rewrite"
	"github.com/jrmoran/xtractly/internal/sanitize"
	"github.com/jrmoran/xtractly/internal/simplifiers"
)

// Result is the (body, flattened text, text length) triple the Candidate
// Selector, Wild-Text Recovery, and this package all produce, letting the
// Arbiter compare them uniformly.
type Result struct {
	Body   *etree.Element
	Text   string
	Length int
}

func (r Result) empty() bool {
	return r.Body == nil || r.Length == 0
}

// sanitizedSignatureExpressions flags leftover boilerplate chrome (share
// bars, related-post widgets, third-party recommendation embeds) — the
// "sanitized boilerplate signature" spec §4.7 names without further
// definition. Run evaluates it against the backup HTML tree; the chosen
// body itself is not searched. This is an Open-Question resolution recorded
// in DESIGN.md.
var sanitizedSignatureExpressions = []pathexpr.Expression{
	{ID: "sharedaddy", Path: `//*[contains(@class,'sharedaddy') or contains(@class,'jp-relatedposts')]`},
	{ID: "outbrain-taboola", Path: `//*[contains(@class,'outbrain') or contains(@class,'taboola') or contains(@id,'outbrain') or contains(@id,'taboola')]`},
	{ID: "disqus", Path: `//*[contains(@id,'disqus') or contains(@class,'disqus')]`},
}

// Run applies the decision table and fallback retries, given the custom
// extraction's result, a deep-copied backup of the working tree (taken after
// the Cleaner and before the Tag Converter, so it still carries the original
// HTML tags), and the feature flags in effect. noFallback bypasses the arbiter
// entirely (spec §4.7's "if no_fallback is set, skip the arbiter entirely").
func Run(custom Result, backup *html.Node, rwOpts rewrite.Options, cfg *config.Config, dedup rewrite.Deduper, noFallback bool) Result {
	if noFallback {
		if custom.empty() {
			return baselineExtraction(backup)
		}
		return custom
	}

	fallback := readabilityFallback(backup, rwOpts, cfg, dedup)
	chosen, usedReadability := decide(custom, fallback, rwOpts, cfg)
	fallbackRan := false

	if hasSanitizedSignature(backup) && chosen.Length < cfg.SanitizedSignatureLengthMultiplier*cfg.MinExtractedSize {
		if pc := paragraphClassifierFallback(backup, rwOpts, cfg, dedup); !pc.empty() && pc.Length*2 >= chosen.Length {
			chosen = pc
			fallbackRan = true
		}
	}

	if !fallbackRan && (custom.Length < cfg.MinExtractedSize || rwOpts.FavorRecall) {
		if pc := paragraphClassifierFallback(backup, rwOpts, cfg, dedup); !pc.empty() && pc.Length > chosen.Length {
			chosen = pc
			fallbackRan = true
		}
	}

	if usedReadability && !fallbackRan {
		sanitizeOpts := sanitize.Options{
			IncludeFormatting: rwOpts.IncludeFormatting,
			IncludeLinks:      rwOpts.IncludeLinks,
			IncludeImages:     rwOpts.IncludeImages,
			IncludeTables:     rwOpts.IncludeTables,
		}
		body, text, length := sanitize.SanitizeTree(chosen.Body, sanitizeOpts)
		chosen = Result{Body: body, Text: text, Length: length}
	}

	if chosen.empty() {
		return baselineExtraction(backup)
	}
	return chosen
}

// decide implements the spec §4.7 decision table, returning the chosen
// result and whether it was the readability-like fallback.
func decide(custom, fb Result, rwOpts rewrite.Options, cfg *config.Config) (Result, bool) {
	l1, l2 := custom.Length, fb.Length
	dm := cfg.DoubleLengthMultiplier

	switch {
	case rwOpts.FavorRecall && l1 > cfg.RecallLengthMultiplier*cfg.MinExtractedSize:
		return custom, false
	case l2 == 0 || l2 == l1:
		return custom, false
	case l1 == 0 && l2 > 0:
		return fb, true
	case l1 > dm*l2:
		return custom, false
	case l2 > dm*l1:
		return fb, true
	case !hasParagraphOrQuoteText(custom.Body) && l2 > dm*cfg.MinExtractedSize:
		return fb, true
	case countTag(custom.Body, etree.Table) > countTag(custom.Body, etree.P) && l2 > dm*cfg.MinExtractedSize:
		return fb, true
	default:
		return custom, false
	}
}

func hasParagraphOrQuoteText(body *etree.Element) bool {
	if body == nil {
		return false
	}
	for _, c := range body.Children() {
		if (c.Tag() == etree.P || c.Tag() == etree.Quote) && strings.TrimSpace(etree.IterText(c, " ")) != "" {
			return true
		}
		if hasParagraphOrQuoteText(c) {
			return true
		}
	}
	return false
}

func countTag(body *etree.Element, tag string) int {
	if body == nil {
		return 0
	}
	n := 0
	for _, c := range body.Children() {
		if c.Tag() == tag {
			n++
		}
		n += countTag(c, tag)
	}
	return n
}

func hasSanitizedSignature(tree *html.Node) bool {
	for _, expr := range sanitizedSignatureExpressions {
		if len(pathexpr.Eval(tree, expr)) > 0 {
			return true
		}
	}
	return false
}

// readabilityFallback runs the Mozilla-Readability-style extractor over a
// rendering of backup, then funnels its output HTML back through the
// module's own Converter/Cleaner/Rewriter so the result shares the same
// etree vocabulary as every other extraction path.
func readabilityFallback(backup *html.Node, rwOpts rewrite.Options, cfg *config.Config, dedup rewrite.Deduper) Result {
	raw := renderHTML(backup)
	if raw == "" {
		return Result{}
	}
	r, err := readability.NewFromHTML(raw, nil)
	if err != nil {
		return Result{}
	}
	article, err := r.Parse()
	if err != nil || article == nil || strings.TrimSpace(article.Content) == "" {
		return Result{}
	}
	frag := htmltree.Load([]byte(article.Content))
	if frag == nil {
		return Result{}
	}
	body := htmltree.Body(frag)
	return buildBody(body, rwOpts, cfg, dedup)
}

// paragraphClassifierFallback runs the content-density scorer over a
// rendering of backup and funnels the best-scoring candidate node back
// through the Converter/Cleaner/Rewriter, the same as readabilityFallback.
func paragraphClassifierFallback(backup *html.Node, rwOpts rewrite.Options, cfg *config.Config, dedup rewrite.Deduper) Result {
	raw := renderHTML(backup)
	if raw == "" {
		return Result{}
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil || doc == nil {
		return Result{}
	}
	candidate := simplifiers.FindMainContentNode(doc)
	if candidate == nil || candidate.Length() == 0 {
		return Result{}
	}
	node := candidate.Nodes[0]
	if node == nil {
		return Result{}
	}
	return buildBody(node, rwOpts, cfg, dedup)
}

// buildBody converts, cleans, and rewrites container's children into a
// fresh body element, the same three-stage pipeline the Candidate Selector
// and Wild-Text Recovery apply to the primary working tree.
func buildBody(container *html.Node, rwOpts rewrite.Options, cfg *config.Config, dedup rewrite.Deduper) Result {
	if container == nil {
		return Result{}
	}
	convert.Convert(container, convert.Options{
		IncludeFormatting: rwOpts.IncludeFormatting,
		IncludeTables:     rwOpts.IncludeTables,
		IncludeImages:     rwOpts.IncludeImages,
		IncludeLinks:      rwOpts.IncludeLinks,
	})
	clean.Clean(container, rwOpts.IncludeImages)

	ctx := rewrite.NewContext(rwOpts, cfg, dedup, rewrite.DefaultPotentialTags()).WithPotentialTags("div")

	out := etree.New(etree.Body)
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		for _, built := range rewrite.RewriteElement(c, ctx) {
			out.AddChild(built)
		}
	}
	etree.RemoveTrailingHeadings(out)
	etree.PruneEmptyPlaceholders(out)
	text := etree.IterText(out, " ")
	return Result{Body: out, Text: text, Length: len(text)}
}

// The baseline* expressions below cover the three rungs of Baseline Extraction
// (spec §4.7's final paragraph), tried in order until one yields non-empty
// text.
var baselineJSONLDExpression = pathexpr.Expression{ID: "jsonld-articlebody", Path: `//script[@type='application/ld+json']`}
var baselineArticleExpression = pathexpr.Expression{ID: "article", Path: `//article`}
var baselineBlockExpressions = []pathexpr.Expression{
	{ID: "blockquote", Path: `//blockquote`},
	{ID: "code", Path: `//code`},
	{ID: "p", Path: `//p`},
	{ID: "pre", Path: `//pre`},
	{ID: "q", Path: `//q`},
	{ID: "quote", Path: `//quote`},
}

// baselineExtraction is the last-resort extractor: JSON-LD articleBody,
// then an article element's text, then concatenated unique text of
// blockquote/code/p/pre/q/quote.
func baselineExtraction(tree *html.Node) Result {
	if tree == nil {
		return Result{}
	}
	if text := jsonLDArticleBody(tree); text != "" {
		return textResult(text)
	}
	if nodes := pathexpr.Eval(tree, baselineArticleExpression); len(nodes) > 0 {
		if text := strings.TrimSpace(nodeText(nodes[0])); text != "" {
			return textResult(text)
		}
	}
	seen := map[string]bool{}
	var parts []string
	for _, expr := range baselineBlockExpressions {
		for _, n := range pathexpr.Eval(tree, expr) {
			t := strings.TrimSpace(nodeText(n))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return Result{}
	}
	return textResult(strings.Join(parts, "\n\n"))
}

func textResult(text string) Result {
	body := etree.New(etree.Body)
	p := etree.New(etree.P)
	p.SetText(text)
	body.AddChild(p)
	return Result{Body: body, Text: text, Length: len(text)}
}

// jsonLDArticleBody extracts the "articleBody" string from the first
// application/ld+json script tag that carries one, without a full JSON
// parse (script content may legitimately be malformed or partial).
func jsonLDArticleBody(tree *html.Node) string {
	for _, n := range pathexpr.Eval(tree, baselineJSONLDExpression) {
		raw := nodeText(n)
		if idx := strings.Index(raw, `"articleBody"`); idx >= 0 {
			rest := raw[idx+len(`"articleBody"`):]
			if s := extractJSONStringValue(rest); s != "" {
				return s
			}
		}
	}
	return ""
}

// extractJSONStringValue pulls the first quoted string value out of a
// "key": "value" fragment, unescaping the common JSON escapes.
func extractJSONStringValue(s string) string {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return ""
	}
	s = strings.TrimSpace(s[i+1:])
	if len(s) == 0 || s[0] != '"' {
		return ""
	}
	s = s[1:]
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\', '/':
				sb.WriteByte(s[i])
			default:
				sb.WriteByte(s[i])
			}
			continue
		}
		if c == '"' {
			break
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

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

func renderHTML(tree *html.Node) string {
	if tree == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, tree); err != nil {
		return ""
	}
	return buf.String()
}
