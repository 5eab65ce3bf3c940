package rewrite

import (
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/etree"
)

// RewriteElement implements handle_paragraphs_child's per-child dispatch
// (spec §4.3). It returns zero or more output elements: zero when the child
// is dropped or empty, more than one when the child is an enumerable
// container whose own children are hoisted into the caller.
func RewriteElement(n *html.Node, ctx Context) []*etree.Element {
	tag := n.Data

	switch tag {
	case "table":
		if !ctx.Opts.IncludeTables {
			return nil
		}
		if el := RewriteTable(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "p", "div":
		if el := Paragraph(n, ctx.child(false, false, "")); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "hi", "head", "ref":
		if el := copyInlinePreserve(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "span":
		if el := RewriteFormatting(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "graphic":
		if !ctx.Opts.IncludeImages {
			return nil
		}
		if el := RewriteImage(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "list":
		if el := RewriteList(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "quote":
		if el := RewriteQuoteCode(n, etree.Quote, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "code":
		if el := RewriteQuoteCode(n, etree.Code, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil

	case "lb":
		if el := RewriteLineBreak(n, ctx); el != nil {
			return []*etree.Element{el}
		}
		return nil
	}

	if ctx.EnumerableTags[tag] {
		var out []*etree.Element
		for _, c := range childElements(n) {
			out = append(out, RewriteElement(c, ctx)...)
		}
		return out
	}

	if !ctx.PotentialTags[tag] {
		// Not a recognized block and not in potential_tags for this round:
		// dropped. Its text and tail are lost (spec §9 open question).
		return nil
	}

	if el := Paragraph(n, ctx.child(false, false, "")); el != nil {
		return []*etree.Element{el}
	}
	return nil
}

// copyInlinePreserve handles hi/head/ref encountered as paragraph children:
// text/tail and the rend/target attributes survive verbatim (spec §4.3).
func copyInlinePreserve(n *html.Node, ctx Context) *etree.Element {
	out := etree.New(n.Data)
	if rend := attr(n, "rend"); rend != "" {
		out.SetAttr("rend", rend)
	}
	if n.Data == "ref" {
		if target := attrAny(n, "target", "href"); target != "" {
			out.SetAttr("target", target)
		}
	}
	if cleaned, ok := CleanText(leadingText(n), TextFlags{}, ctx.Dedup); ok {
		out.SetText(cleaned)
	}
	for _, c := range childElements(n) {
		for _, built := range RewriteElement(c, ctx.child(false, false, "")) {
			out.AddChild(built)
		}
	}
	if cleaned, ok := CleanText(tailText(n), TextFlags{}, ctx.Dedup); ok {
		out.SetTail(cleaned)
	}
	if etree.IterText(out, "") == "" && len(out.Children()) == 0 {
		return nil
	}
	return out
}

// Paragraph builds a fresh p element from n's children (spec §4.3's
// root-level entry into the paragraph recursion). The output is always
// tagged p — when n is a div, this also implements "if the new element is
// tagged div and carries text, retag as p", since an output-vocabulary div
// never exists (§3's closed vocabulary).
func Paragraph(n *html.Node, ctx Context) *etree.Element {
	out := etree.New(etree.P)
	if cleaned, ok := CleanText(leadingText(n), TextFlags{}, ctx.Dedup); ok {
		out.SetText(cleaned)
	}

	children := childElements(n)
	for i, c := range children {
		isLast := i == len(children)-1
		hasTail := tailText(c) != ""
		built := RewriteElement(c, ctx.child(isLast && ctx.IsRoot, hasTail, ""))
		for _, b := range built {
			appendChildWithSpacing(out, b)
		}
	}

	// Cleanup (spec §4.3): no trailing line break.
	if kids := out.Children(); len(kids) > 0 && kids[len(kids)-1].Tag() == etree.Lb {
		out.RemoveChild(kids[len(kids)-1])
	}

	if out.Text() == "" && len(out.Children()) == 0 {
		return nil
	}
	return out
}

// appendChildWithSpacing appends child to parent, inserting a single
// joining space into the previous sibling's tail (or parent's own text, if
// child is first) when the bidirectional predicate calls for one (spec
// §4.3's whitespace reconstruction rules).
func appendChildWithSpacing(parent *etree.Element, child *etree.Element) {
	existing := parent.Children()
	var priorText string
	if len(existing) == 0 {
		priorText = parent.Text()
	} else {
		priorText = trailingText(existing[len(existing)-1])
	}
	sp := joinSpace(priorText, leadingText2(child))
	if sp != "" {
		if len(existing) == 0 {
			parent.SetText(parent.Text() + sp)
		} else {
			last := existing[len(existing)-1]
			last.SetTail(last.Tail() + sp)
		}
	}
	parent.AddChild(child)
}

// trailingText returns the last inline text reachable from e: its own tail
// if set, else its last child's trailing text, else its own text.
func trailingText(e *etree.Element) string {
	if e.Tail() != "" {
		return e.Tail()
	}
	kids := e.Children()
	if len(kids) > 0 {
		return trailingText(kids[len(kids)-1])
	}
	return e.Text()
}

// leadingText2 returns the first inline text reachable from e.
func leadingText2(e *etree.Element) string {
	if e.Text() != "" {
		return e.Text()
	}
	kids := e.Children()
	if len(kids) > 0 {
		return leadingText2(kids[0])
	}
	return e.Tail()
}
