// Package convert implements the Tag Converter collaborator (spec §4.1): it
// rewrites the working *html.Node tree from HTML vocabulary into the
// internal vocabulary of §3, in place. Presentational tags collapse onto
// semantic equivalents; tags suppressed by a feature flag are stripped with
// their inline text hoisted into the parent and their tail appended to the
// previous sibling, mirroring the teacher's in-place DOM surgery in
// internal/simplifiers/html.go.
package convert

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options gates which vocabulary families survive conversion.
type Options struct {
	IncludeFormatting bool
	IncludeTables     bool
	IncludeImages     bool
	IncludeLinks      bool
}

// headingRend maps HTML heading tags to their rend attribute value.
var headingRend = map[string]string{
	"h1": "h1", "h2": "h2", "h3": "h3", "h4": "h4", "h5": "h5", "h6": "h6",
}

// Convert walks root and rewrites every element in place into the internal
// vocabulary, per Options. It returns root for chaining.
func Convert(root *html.Node, opts Options) *html.Node {
	walk(root, opts)
	return root
}

// walk visits n's children first (bottom-up), since stripping a suppressed
// node needs its own children already converted so hoisted text carries the
// right tags.
func walk(n *html.Node, opts Options) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		walk(c, opts)
		c = next
	}
	if n.Type != html.ElementNode {
		return
	}
	convertNode(n, opts)
}

func convertNode(n *html.Node, opts Options) {
	switch n.Data {
	case "b", "strong":
		if !opts.IncludeFormatting {
			strip(n)
			return
		}
		retag(n, "hi")
		setAttr(n, "rend", "bold")
	case "i", "em":
		if !opts.IncludeFormatting {
			strip(n)
			return
		}
		retag(n, "hi")
		setAttr(n, "rend", "italic")
	case "u":
		if !opts.IncludeFormatting {
			strip(n)
			return
		}
		retag(n, "hi")
		setAttr(n, "rend", "underline")
	case "tt":
		if !opts.IncludeFormatting {
			strip(n)
			return
		}
		retag(n, "code")
	case "strike", "del", "s":
		if !opts.IncludeFormatting {
			strip(n)
			return
		}
		retag(n, "del")
	case "font":
		// §C.3: presentational wrapper, always stripped, content hoisted.
		strip(n)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		retag(n, "head")
		setAttr(n, "rend", headingRend[n.Data])
	case "summary":
		// §C.2: <summary> is retagged as a heading; its <details> parent
		// gets no special handling and is not an enumerable container.
		retag(n, "head")
		setAttr(n, "rend", "h6")
	case "a":
		if !opts.IncludeLinks {
			if !hasAttr(n, "rel", "license") {
				strip(n)
				return
			}
		}
		href := attrOr(n, "href", "")
		retag(n, "ref")
		removeAttrsExcept(n, "rel")
		if href != "" {
			setAttr(n, "target", href)
		}
	case "ul", "ol":
		retag(n, "list")
	case "li":
		retag(n, "item")
	case "blockquote", "q":
		retag(n, "quote")
	case "pre", "code":
		retag(n, "code")
	case "img":
		if !opts.IncludeImages {
			strip(n)
			return
		}
		retag(n, "graphic")
	case "figure", "picture", "source":
		if !opts.IncludeImages {
			strip(n)
			return
		}
		// enumerable containers; left as-is for handleParagraphsChild to
		// flatten (spec §4.3's tags_to_enumerate).
	case "table":
		if !opts.IncludeTables {
			strip(n)
			return
		}
	case "br":
		retag(n, "lb")
	case "script", "style", "noscript", "iframe", "template":
		remove(n)
	}
}

// retag renames n's tag in place, matching §3's "tag value... mutable during
// processing" and §5's "DOM tree is mutated in place".
func retag(n *html.Node, tag string) {
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
}

func setAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func attrOr(n *html.Node, key, fallback string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return fallback
}

func hasAttr(n *html.Node, key, value string) bool {
	return strings.EqualFold(attrOr(n, key, ""), value)
}

func removeAttrsExcept(n *html.Node, keep ...string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		for _, k := range keep {
			if a.Key == k {
				out = append(out, a)
				break
			}
		}
	}
	n.Attr = out
}

// strip removes n from the tree but hoists its children (and text) into its
// former position, and appends any immediately-following text to the
// previous sibling's trailing text node — spec §4.1: "their inline text is
// hoisted into the parent, their tail is appended to the last previous
// sibling's tail".
func strip(n *html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	prev := n.PrevSibling
	var children []*html.Node
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		children = append(children, c)
		c = next
	}
	for _, c := range children {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	mergeAdjacentText(parent, prev)
}

// remove deletes n and its subtree outright (scripts, styles: no content
// worth hoisting).
func remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// mergeAdjacentText coalesces consecutive text-node siblings around anchor
// into one, so a later Tail()/Text() read sees a single string rather than a
// run of sibling text nodes left over from hoisting.
func mergeAdjacentText(parent *html.Node, anchor *html.Node) {
	start := parent.FirstChild
	if anchor != nil {
		start = anchor
	}
	for n := start; n != nil; {
		next := n.NextSibling
		if n.Type == html.TextNode && next != nil && next.Type == html.TextNode {
			n.Data += next.Data
			parent.RemoveChild(next)
			continue
		}
		n = next
	}
}
