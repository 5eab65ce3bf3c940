package xtractly

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/arbiter"
	"github.com/jrmoran/xtractly/internal/clean"
	"github.com/jrmoran/xtractly/internal/comments"
	"github.com/jrmoran/xtractly/internal/convert"
	"github.com/jrmoran/xtractly/internal/dedup"
	"github.com/jrmoran/xtractly/internal/density"
	"github.com/jrmoran/xtractly/internal/etree"
	"github.com/jrmoran/xtractly/internal/htmltree"
	"github.com/jrmoran/xtractly/internal/langfilter"
	"github.com/jrmoran/xtractly/internal/metadata"
	"github.com/jrmoran/xtractly/internal/pathexpr"
	"github.com/jrmoran/xtractly/internal/rewrite"
	"github.com/jrmoran/xtractly/internal/wildtext"
)

// Extract runs the full pipeline over raw HTML and returns the extraction
// result, or (nil, nil) when the document is rejected (spec §7: "no error
// surfaces to the caller for a well-formed-but-rejected document"). A
// non-nil error only indicates malformed input.
func Extract(rawHTML string, opts ...Option) (*Document, error) {
	return extract([]byte(rawHTML), opts)
}

// ExtractReader is a convenience wrapper around Extract for io.Reader
// sources, mirroring the teacher's ExtractFromReader.
func ExtractReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return extract(data, opts)
}

func extract(data []byte, opts []Option) (*Document, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := o.Config

	if len(data) == 0 {
		return nil, nil
	}
	tree := htmltree.Load(data)
	if tree == nil {
		return nil, fmt.Errorf("xtractly: malformed or empty HTML")
	}

	clean.Clean(tree, o.IncludeImages)

	var backup *html.Node
	if !o.NoFallback {
		backup = htmltree.Clone(tree)
	}

	convOpts := convert.Options{
		IncludeFormatting: o.IncludeFormatting,
		IncludeTables:     o.IncludeTables,
		IncludeImages:     o.IncludeImages,
		IncludeLinks:      o.IncludeLinks,
	}
	convert.Convert(tree, convOpts)

	dedupCache := dedup.NewCache()
	rwOpts := rewrite.Options{
		IncludeTables:     o.IncludeTables,
		IncludeImages:     o.IncludeImages,
		IncludeLinks:      o.IncludeLinks,
		IncludeFormatting: o.IncludeFormatting,
		FavorPrecision:    o.FavorPrecision,
		FavorRecall:       o.FavorRecall,
	}
	ctx := rewrite.NewContext(rwOpts, cfg, dedupCache, rewrite.DefaultPotentialTags())

	commentsBody, hasComments := comments.Extract(tree, ctx)

	custom, won := selectCandidate(tree, ctx, rwOpts, cfg)
	if !won {
		slog.Debug("xtractly: no candidate body expression won, recovering wild text")
		recovered := wildtext.Recover(tree, ctx)
		text := etree.IterText(recovered, " ")
		custom = arbiter.Result{Body: recovered, Text: text, Length: len(text)}
	}

	final := arbiter.Run(custom, backup, rwOpts, cfg, dedupCache, o.NoFallback)

	meta := metadata.Extract(tree, metadata.Params{
		SourceURL:       o.SourceURL,
		AuthorBlacklist: o.AuthorBlacklist,
		NoFallback:      o.NoFallback,
	})

	doc := &Document{
		Title: meta.Title, Author: meta.Author, Date: meta.Date,
		URL: meta.URL, Hostname: meta.Hostname, Description: meta.Description,
		Categories: meta.Categories, Tags: meta.Tags, License: meta.License,
		Lang: meta.Lang, ID: o.RecordID,
		body: final.Body, Text: final.Text,
	}
	if o.IncludeComments && hasComments {
		doc.commentsBody = commentsBody
		doc.Comments = etree.IterText(commentsBody, " ")
	}
	doc.Fingerprint = dedup.Fingerprint(doc.Text)

	if rejected := postFilter(doc, o, cfg, dedupCache); rejected {
		return nil, nil
	}
	return doc, nil
}

// selectCandidate implements the Candidate Selector (spec §4.4): try each
// ranked body path expression in order, clean and prune its subtree, and
// rewrite it through the Element Rewriter. The first expression whose
// result body gains more than one child wins.
func selectCandidate(tree *html.Node, ctx rewrite.Context, rwOpts rewrite.Options, cfg *Config) (arbiter.Result, bool) {
	th := density.DefaultThresholds()

	for _, expr := range pathexpr.BodyExpressions {
		nodes := pathexpr.Eval(tree, expr)
		if len(nodes) == 0 {
			continue
		}
		subtree := nodes[0]

		clean.Clean(subtree, rwOpts.IncludeImages)
		density.Prune(subtree, "div", th, true)
		density.Prune(subtree, "list", th, false)
		density.Prune(subtree, "p", th, false)
		if rwOpts.FavorPrecision {
			density.Prune(subtree, "head", th, false)
		}
		if rwOpts.IncludeTables || rwOpts.FavorPrecision {
			pruneBoilerplateTables(subtree, th)
		}
		if !hasAnyElementChild(subtree) {
			continue
		}

		roundCtx := ctx
		if rwOpts.FavorRecall || paragraphTextLength(subtree) < 2*cfg.MinExtractedSize {
			roundCtx = ctx.WithPotentialTags("div")
		}

		out := etree.New(etree.Body)
		for c := subtree.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			for _, built := range rewrite.RewriteElement(c, roundCtx) {
				out.AddChild(built)
			}
		}
		etree.RemoveTrailingHeadings(out)

		if len(out.Children()) > 1 {
			text := etree.IterText(out, " ")
			return arbiter.Result{Body: out, Text: text, Length: len(text)}, true
		}
	}
	return arbiter.Result{}, false
}

func pruneBoilerplateTables(subtree *html.Node, th density.Thresholds) {
	var tables []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(subtree)
	for _, t := range tables {
		if density.TableIsBoilerplate(t, th) && t.Parent != nil {
			t.Parent.RemoveChild(t)
		}
	}
}

func hasAnyElementChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

func paragraphTextLength(subtree *html.Node) int {
	total := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			total += len(flattenText(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(subtree)
	return total
}

func flattenText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(x *html.Node) {
		if x.Type == html.TextNode {
			sb.WriteString(x.Data)
			return
		}
		for c := x.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// postFilter implements spec §4.8: tree-size cap, minimum output size,
// deduplication, and language match. Returns true when the document should
// be rejected (no result returned to the caller).
func postFilter(doc *Document, o Options, cfg *Config, dedupCache *dedup.Cache) bool {
	if doc.body == nil {
		return true
	}
	if o.MaxTreeSize > 0 && len(doc.body.Children()) > o.MaxTreeSize {
		stripFormatting(doc.body)
		doc.Text = etree.IterText(doc.body, " ")
		if len(doc.body.Children()) > o.MaxTreeSize {
			return true
		}
	}
	if len(doc.Text) < cfg.MinOutputSize && len(doc.Comments) < cfg.MinOutputCommSize {
		return true
	}
	if o.Deduplicate && dedupCache.IsDuplicateBody(doc.Text) {
		return true
	}
	if o.TargetLanguage != "" && !langfilter.Matches(doc.Lang, o.TargetLanguage, doc.Text) {
		return true
	}
	if o.OnlyWithMetadata && strings.TrimSpace(doc.Title) == "" {
		return true
	}
	return false
}

// stripFormatting removes hi wrappers throughout body, hoisting their
// children in place, the Post-Filter's tree-size reduction step.
func stripFormatting(e *etree.Element) {
	for _, c := range e.Children() {
		if c.Tag() == etree.Hi {
			for _, gc := range c.Children() {
				e.AddChild(gc)
			}
			e.RemoveChild(c)
			continue
		}
		stripFormatting(c)
	}
}
