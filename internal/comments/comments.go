// Package comments implements the Comments Extractor collaborator (spec
// §4.2): locate the comments region via an ordered path-expression table,
// clean and rewrite it into a body-rooted output tree, and detach it from
// the main document.
package comments

import (
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/clean"
	"github.com/jrmoran/xtractly/internal/etree"
	"github.com/jrmoran/xtractly/internal/pathexpr"
	"github.com/jrmoran/xtractly/internal/rewrite"
)

// Extract iterates pathexpr.CommentsExpressions; for the first expression
// yielding a non-empty subtree it cleans, strips inline wrappers, rewrites,
// and detaches that subtree. It returns (nil, false) when no expression
// matched anything.
func Extract(tree *html.Node, ctx rewrite.Context) (*etree.Element, bool) {
	_, nodes := pathexpr.First(tree, pathexpr.CommentsExpressions)
	if len(nodes) == 0 {
		return nil, false
	}
	region := nodes[0]

	clean.CleanComments(region)
	stripInlineWrappers(region)

	out := etree.New(etree.Body)
	for _, c := range childElements(region) {
		for _, built := range rewrite.RewriteElement(c, ctx) {
			out.AddChild(built)
		}
	}

	if region.Parent != nil {
		region.Parent.RemoveChild(region)
	}

	if etree.IterText(out, "") == "" {
		return nil, false
	}
	return out, true
}

// stripInlineWrappers removes a/ref/span elements within region while
// keeping their text, per spec §4.2 step 2.
func stripInlineWrappers(region *html.Node) {
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
	walk(region)
	for _, n := range targets {
		unwrap(n)
	}
}

// unwrap replaces n with its children in its parent's child list, keeping
// n's own text as a leading text node.
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

func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
