// Package htmltree implements the HTML loader collaborator (spec §6):
// raw bytes in, a mutable *html.Node tree out, or nil on malformed input.
package htmltree

import (
	"bytes"
	"io"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
)

// Load parses raw HTML bytes into a working tree. It sniffs the charset
// with chardet and logs a non-UTF-8 result; the bytes are parsed as they
// are either way, with no transcoding. On a malformed or empty document it
// returns nil rather than an
// error, matching the "input-invalid" error kind from spec §7.
func Load(data []byte) *html.Node {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	data = toUTF8(data)

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		slog.Debug("htmltree: parse failed", "error", err)
		return nil
	}

	if !hasAnyElement(doc) {
		return nil
	}

	return doc
}

// LoadReader is a convenience wrapper around Load for io.Reader sources.
func LoadReader(r io.Reader) *html.Node {
	data, err := io.ReadAll(r)
	if err != nil {
		slog.Debug("htmltree: read failed", "error", err)
		return nil
	}
	return Load(data)
}

// toUTF8 runs chardet over data and logs a detected charset other than
// UTF-8 or ASCII. It returns data unchanged in every case; it does not
// re-encode to UTF-8.
func toUTF8(data []byte) []byte {
	det := chardet.NewTextDetector()
	result, err := det.DetectBest(data)
	if err != nil || result == nil {
		return data
	}

	charset := strings.ToLower(result.Charset)
	if charset == "" || charset == "utf-8" || charset == "ascii" {
		return data
	}

	// The retrieval pack's HTML loaders (chardet/goquery) assume UTF-8 once
	// detected; actual transcoding of the long tail of legacy charsets is
	// out of scope for the extraction core (spec §1's "HTML parsing and DOM
	// construction... assumed available"), so we only log the mismatch.
	slog.Debug("htmltree: non-utf8 charset detected, passing through", "charset", charset)
	return data
}

func hasAnyElement(doc *html.Node) bool {
	found := false
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found || n == nil {
			return
		}
		if n.Type == html.ElementNode && n.Data != "html" && n.Data != "head" && n.Data != "body" {
			found = true
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// Body returns the document's <body> element, or doc itself when no body
// element is found.
func Body(doc *html.Node) *html.Node {
	gq := goquery.NewDocumentFromNode(doc)
	body := gq.Find("body")
	if body.Length() > 0 {
		return body.Get(0)
	}
	return doc
}

// Clone deep-copies tree, detached from any parent. Used to take the
// single backup the Arbiter needs (after the Cleaner, before the Tag
// Converter) when fallback is
// enabled (spec §5); every other stage of an extraction aliases the same
// working tree.
func Clone(tree *html.Node) *html.Node {
	if tree == nil {
		return nil
	}
	clone := &html.Node{
		Type:     tree.Type,
		DataAtom: tree.DataAtom,
		Data:     tree.Data,
		Namespace: tree.Namespace,
	}
	if tree.Attr != nil {
		clone.Attr = make([]html.Attribute, len(tree.Attr))
		copy(clone.Attr, tree.Attr)
	}
	for c := tree.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(Clone(c))
	}
	return clone
}
