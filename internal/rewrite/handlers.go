package rewrite

import (
	"golang.org/x/net/html"

	"github.com/jrmoran/xtractly/internal/etree"
)

// RewriteHeading implements the Heading policy (spec §4.3).
func RewriteHeading(n *html.Node, ctx Context) *etree.Element {
	out := etree.New(etree.Head)
	if rend := attr(n, "rend"); rend != "" {
		out.SetAttr("rend", rend)
	}

	if !hasElementChildren(n) {
		cleaned, ok := CleanText(flattenText(n), TextFlags{}, ctx.Dedup)
		if !ok {
			return nil
		}
		out.SetText(cleaned)
	} else {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if cleaned, ok := CleanText(c.Data, TextFlags{}, ctx.Dedup); ok {
					appendTrailingText(out, cleaned)
				}
			case html.ElementNode:
				child := RewriteElement(c, ctx.child(false, false, ""))
				if child != nil {
					out.AddChild(child)
				}
			}
		}
	}

	if !hasAlpha(etree.IterText(out, "")) {
		return nil
	}
	return out
}

// appendTrailingText appends text either as out's own text (if still empty
// and childless) or as the tail of its last child.
func appendTrailingText(out *etree.Element, text string) {
	children := out.Children()
	if len(children) == 0 {
		out.SetText(joinText(out.Text(), text))
		return
	}
	last := children[len(children)-1]
	last.SetTail(joinText(last.Tail(), text))
}

func joinText(existing, addition string) string {
	if existing == "" {
		return addition
	}
	return existing + joinSpace(existing, addition) + addition
}

// RewriteList implements the List policy (spec §4.3).
func RewriteList(n *html.Node, ctx Context) *etree.Element {
	out := etree.New(etree.List)
	anySurvived := false
	for _, item := range childElements(n) {
		if item.Data != "item" {
			continue
		}
		rewritten := Paragraph(item, ctx.child(false, false, ""))
		if rewritten == nil {
			continue
		}
		itemEl := etree.New(etree.Item)
		itemEl.SetText(rewritten.Text())
		for _, c := range rewritten.Children() {
			itemEl.AddChild(c)
		}
		if etree.IterText(itemEl, "") == "" {
			continue
		}
		out.AddChild(itemEl)
		anySurvived = true
	}
	if !anySurvived {
		return nil
	}
	return out
}

// RewriteQuoteCode implements the Quote/Code policy (spec §4.3): produce a
// new element of tag, clean each descendant's text into a sibling of the
// same tag, then strip nested wrappers of that tag to avoid double quoting.
func RewriteQuoteCode(n *html.Node, tag string, ctx Context) *etree.Element {
	out := etree.New(tag)
	any := false
	for _, d := range descendants(n) {
		text := leadingText(d)
		cleaned, ok := CleanText(text, TextFlags{PreserveSpaces: tag == etree.Code}, ctx.Dedup)
		if !ok {
			continue
		}
		sib := etree.New(tag)
		sib.SetText(cleaned)
		if tailCleaned, ok := CleanText(tailText(d), TextFlags{}, ctx.Dedup); ok {
			sib.SetTail(tailCleaned)
		}
		out.AddChild(sib)
		any = true
	}
	if !any {
		cleaned, ok := CleanText(flattenText(n), TextFlags{PreserveSpaces: tag == etree.Code}, ctx.Dedup)
		if !ok {
			return nil
		}
		out.SetText(cleaned)
	}
	// out's own direct children were just built as siblings of tag by
	// construction, so they are never "nested wrappers" themselves; only
	// look one level further down for a same-tag wrapper to flatten.
	for _, c := range out.Children() {
		stripNestedWrapper(c, tag)
	}
	return out
}

// stripNestedWrapper flattens children tagged the same as their parent,
// hoisting their own children in place — the "strip any nested quote
// wrappers to avoid double quoting" step.
func stripNestedWrapper(parent *etree.Element, tag string) {
	for _, c := range parent.Children() {
		if c.Tag() == tag {
			for _, gc := range c.Children() {
				parent.AddChild(gc)
			}
			parent.RemoveChild(c)
		} else {
			stripNestedWrapper(c, tag)
		}
	}
}

var tableInlineTags = map[string]bool{"td": true, "th": true, "hi": true}

// RewriteTable implements the Table policy (spec §4.3).
func RewriteTable(n *html.Node, ctx Context) *etree.Element {
	out := etree.New(etree.Table)
	var currentRow *etree.Element
	anyRow := false
	seenNestedTable := false

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				walk(c)
				continue
			case "tr", "row":
				if currentRow != nil {
					out.AddChild(currentRow)
					anyRow = true
				}
				currentRow = etree.New(etree.Row)
				walk(c)
				continue
			case "td", "th", "cell":
				if currentRow == nil {
					currentRow = etree.New(etree.Row)
				}
				cell := etree.New(etree.Cell)
				if c.Data == "th" || attr(c, "role") == "head" {
					cell.SetAttr("role", "head")
				}
				if hasElementChildren(c) {
					for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
						if gc.Type != html.ElementNode {
							continue
						}
						var built *etree.Element
						if tableInlineTags[gc.Data] {
							cleaned, ok := CleanText(flattenText(gc), TextFlags{}, ctx.Dedup)
							if ok {
								built = etree.New(etree.Hi)
								built.SetText(cleaned)
							}
						} else {
							scope := ctx.WithPotentialTags("div")
							built = RewriteElement(gc, scope.child(false, false, ""))
						}
						if built != nil {
							cell.AddChild(built)
						}
					}
				} else {
					cleaned, ok := CleanText(flattenText(c), TextFlags{}, ctx.Dedup)
					if ok {
						cell.SetText(cleaned)
					}
				}
				currentRow.AddChild(cell)
				continue
			case "table":
				if seenNestedTable {
					continue
				}
				seenNestedTable = true
				continue
			default:
				walk(c)
			}
		}
	}
	walk(n)
	if currentRow != nil {
		out.AddChild(currentRow)
		anyRow = true
	}
	if !anyRow {
		return nil
	}
	return out
}

// RewriteFormatting implements the Formatting policy (spec §4.3) for
// hi/ref/span nodes.
func RewriteFormatting(n *html.Node, ctx Context) *etree.Element {
	tag := n.Data
	if tag == "span" {
		tag = etree.Hi
	}
	out := etree.New(tag)
	if rend := attr(n, "rend"); rend != "" {
		out.SetAttr("rend", rend)
	}
	if target := attrAny(n, "target", "href"); target != "" && n.Data == "ref" {
		out.SetAttr("target", target)
	}
	if rel := attr(n, "rel"); rel != "" {
		out.SetAttr("rel", rel)
	}
	cleaned, ok := CleanText(flattenText(n), TextFlags{}, ctx.Dedup)
	if ok {
		out.SetText(cleaned)
	}
	if etree.IterText(out, "") == "" {
		return nil
	}

	parentTag := ctx.parentTagOrPrevSibling(n)
	if formattingProtectingTags[parentTag] {
		return out
	}
	wrapper := etree.New(etree.P)
	wrapper.AddChild(out)
	return wrapper
}

// parentTagOrPrevSibling reports the effective parent tag used by the
// Formatting policy's wrap decision: the real parent's tag, or (absent a
// parent) the previous sibling's tag.
func (ctx Context) parentTagOrPrevSibling(n *html.Node) string {
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		return n.Parent.Data
	}
	if n.PrevSibling != nil && n.PrevSibling.Type == html.ElementNode {
		return n.PrevSibling.Data
	}
	return ""
}

// RewriteImage implements the Image policy (spec §4.3).
func RewriteImage(n *html.Node, ctx Context) *etree.Element {
	src := attrAny(n, "data-src", "src")
	if src == "" {
		for _, a := range n.Attr {
			if len(a.Key) > len("data-src") && a.Key[:8] == "data-src" && looksLikeImageFile(a.Val) {
				src = a.Val
				break
			}
		}
	}
	if src == "" {
		return nil
	}
	src = protocolRelativeToHTTP(src)

	out := etree.New(etree.Graphic)
	out.SetAttr("src", src)
	if alt := attr(n, "alt"); alt != "" {
		out.SetAttr("alt", alt)
	}
	if title := attr(n, "title"); title != "" {
		out.SetAttr("title", title)
	}
	if class := attr(n, "class"); class != "" {
		out.SetAttr("class", class)
	}
	return out
}

// RewriteLineBreak implements the Line break policy (spec §4.3): a lb with
// tail text becomes a p carrying that tail.
func RewriteLineBreak(n *html.Node, ctx Context) *etree.Element {
	tail := tailText(n)
	cleaned, ok := CleanText(tail, TextFlags{}, ctx.Dedup)
	if !ok {
		return nil
	}
	out := etree.New(etree.P)
	out.SetText(cleaned)
	return out
}
