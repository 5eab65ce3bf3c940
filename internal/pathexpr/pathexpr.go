// Package pathexpr implements the path-expression evaluator spec §9 asks
// for: "Implementations must provide an XPath 1.0-compatible evaluator...
// Load [body/comments/discard expressions] from a static table (identifier
// plus compiled expression)."
package pathexpr

import (
	"log/slog"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Expression is one entry of an ordered path-expression table: an
// identifier for diagnostics paired with its XPath 1.0 query string.
type Expression struct {
	ID   string
	Path string
}

// Eval evaluates expr against tree and returns the matched nodes in
// document order. A malformed expression or a tree with no match yields a
// nil slice, never a panic — collaborators must fail closed
// per spec §7.
func Eval(tree *html.Node, expr Expression) []*html.Node {
	if tree == nil {
		return nil
	}
	nodes, err := htmlquery.QueryAll(tree, expr.Path)
	if err != nil {
		slog.Debug("pathexpr: invalid expression", "id", expr.ID, "path", expr.Path, "error", err)
		return nil
	}
	return nodes
}

// First returns the first expression in table that yields at least one
// match, along with its matched nodes. It implements the "iterate an
// ordered list... first to yield a non-empty result wins" pattern shared by
// the Candidate Selector (§4.4) and the Comments Extractor (§4.2).
func First(tree *html.Node, table []Expression) (Expression, []*html.Node) {
	for _, expr := range table {
		nodes := Eval(tree, expr)
		if len(nodes) > 0 {
			return expr, nodes
		}
	}
	return Expression{}, nil
}
