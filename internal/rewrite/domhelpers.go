package rewrite

import "golang.org/x/net/html"

// attr returns n's attribute value, or "" if absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// attrAny returns the first present attribute among keys.
func attrAny(n *html.Node, keys ...string) string {
	for _, k := range keys {
		if v := attr(n, k); v != "" {
			return v
		}
	}
	return ""
}

// leadingText concatenates n's text-node children up to (not including)
// its first element child — the "text before first child" field of §3.
func leadingText(n *html.Node) string {
	var out string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			out += c.Data
		}
	}
	return out
}

// tailText concatenates n's following text-node siblings up to (not
// including) the next element sibling — the "tail" field of §3.
func tailText(n *html.Node) string {
	var out string
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			out += c.Data
		}
	}
	return out
}

// childElements returns n's direct element children in document order.
func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// hasElementChildren reports whether n has at least one element child.
func hasElementChildren(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return true
		}
	}
	return false
}

// flattenText concatenates every text/tail fragment under n in document
// order, ignoring element boundaries — used for the heading/quote survival
// checks that only care whether any alphabetic text remains.
func flattenText(n *html.Node) string {
	var out string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			out += node.Data
			return
		}
		if node.Type != html.ElementNode {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// descendants walks n's element descendants in document order (n excluded).
func descendants(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				out = append(out, c)
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// protocolRelativeToHTTP rewrites a "//host/path" URL to "http://host/path"
// (spec §4.3 Image policy / §8 boundary behavior).
func protocolRelativeToHTTP(src string) string {
	if len(src) >= 2 && src[0] == '/' && src[1] == '/' {
		return "http:" + src
	}
	return src
}

// imageFileExtensions gates the "first data-src-like attribute that points
// to an image file" rule in the Image policy.
var imageFileExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp", ".avif"}

func looksLikeImageFile(v string) bool {
	for _, ext := range imageFileExtensions {
		if hasSuffixFold(v, ext) || hasSuffixFoldBeforeQuery(v, ext) {
			return true
		}
	}
	return false
}

func hasSuffixFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	tail := s[len(s)-len(suffix):]
	return equalFold(tail, suffix)
}

func hasSuffixFoldBeforeQuery(s, suffix string) bool {
	if i := indexByte(s, '?'); i >= 0 {
		return hasSuffixFold(s[:i], suffix)
	}
	return false
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
