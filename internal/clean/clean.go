// Package clean implements the Cleaner collaborator (spec §4.2): subtree
// removal driven by the discard path-expression tables. Script and style
// elements are not removed here; the Tag Converter drops them. Grounded on the teacher's
// internal/simplifiers/html.go, which walks the same *html.Node tree
// removing non-content elements before readability scoring.
package clean

import (
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/pathexpr"
)

// Clean removes discard-expression matches from tree, and additionally
// image carriers when includeImages is false. It mutates tree in place and
// returns it for chaining.
func Clean(tree *html.Node, includeImages bool) *html.Node {
	removeAll(tree, pathexpr.DiscardExpressions)
	if !includeImages {
		removeAll(tree, pathexpr.ImageDiscardExpressions)
	}
	return tree
}

// CleanComments prunes a matched comments subtree against the
// comments-specific discard table (spec §4.2 step 1).
func CleanComments(tree *html.Node) *html.Node {
	removeAll(tree, pathexpr.CommentsDiscardExpressions)
	return tree
}

func removeAll(tree *html.Node, table []pathexpr.Expression) {
	for _, expr := range table {
		for _, n := range pathexpr.Eval(tree, expr) {
			removeNode(n)
		}
	}
}

// removeNode detaches n from its parent if it hasn't already been removed by
// an earlier, broader match in the same pass.
func removeNode(n *html.Node) {
	if n == nil || n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}
