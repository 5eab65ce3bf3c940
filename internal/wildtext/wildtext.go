// Package wildtext implements Wild-Text Recovery (spec §4.6): the fallback
// sweep over the full cleaned document when the Candidate Selector found no
// winning region.
package wildtext

import (
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/clean"
	"github.com/jrmoran/xtractly/internal/etree"
	"github.com/jrmoran/xtractly/internal/pathexpr"
	"github.com/jrmoran/xtractly/internal/rewrite"
)

// blockTags is the document-order sweep list from spec §4.6 step 5,
// expressed in the post-Converter vocabulary (blockquote→quote, pre→code).
var blockTags = map[string]bool{
	"quote": true, "code": true, "div": true, "p": true, "table": true, "lb": true,
}

// Recover scans tree (already cleaned) for every blockquote/code/div/p/pre/
// table/lb in document order, rewrites each, and appends survivors to a
// fresh body. Recover adds "div" to a copy of ctx's PotentialTags (spec §4.6
// step 4); the caller's set is not modified.
func Recover(tree *html.Node, ctx rewrite.Context) *etree.Element {
	clean.Clean(tree, ctx.Opts.IncludeImages)
	if !ctx.Opts.IncludeImages {
		pruneImages(tree)
	}
	if !ctx.Opts.IncludeLinks {
		stripInlineLinks(tree)
	}
	ctx = ctx.WithPotentialTags("div")

	out := etree.New(etree.Body)
	for _, n := range sweep(tree) {
		for _, built := range rewrite.RewriteElement(n, ctx) {
			out.AddChild(built)
		}
	}
	return out
}

func pruneImages(tree *html.Node) {
	for _, expr := range pathexpr.ImageDiscardExpressions {
		for _, n := range pathexpr.Eval(tree, expr) {
			if n.Parent != nil {
				n.Parent.RemoveChild(n)
			}
		}
	}
}

// stripInlineLinks removes a/ref/span wrappers while keeping their text, the
// same unwrap used for comments.
func stripInlineLinks(tree *html.Node) {
	var targets []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				if c.Data == "a" || c.Data == "ref" || c.Data == "span" {
					targets = append(targets, c)
				}
				walk(c)
			}
		}
	}
	walk(tree)
	for _, n := range targets {
		unwrap(n)
	}
}

func unwrap(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	var moving []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		moving = append(moving, c)
		c = next
	}
	for _, c := range moving {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

// sweep returns every node in document order whose tag is in blockTags,
// without descending into a matched node's own matched descendants twice
// (a matched p inside a matched div is still visited independently, per
// spec §4.6's plain document-order walk).
func sweep(tree *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (blockTags[n.Data] || n.Data == "blockquote" || n.Data == "pre" || n.Data == "q") {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(tree)
	return out
}
