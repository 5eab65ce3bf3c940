package convert

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func parse(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	return doc
}

func find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if f := find(c, tag); f != nil {
			return f
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func allOptions() Options {
	return Options{IncludeFormatting: true, IncludeTables: true, IncludeImages: true, IncludeLinks: true}
}

func TestConvertBoldBecomesHiWithBoldRend(t *testing.T) {
	tree := parse(t, `<html><body><p><b>hi</b></p></body></html>`)
	Convert(tree, allOptions())

	hi := find(tree, "hi")
	if hi == nil {
		t.Fatal("expected a hi element after converting <b>")
	}
	if rend, ok := attr(hi, "rend"); !ok || rend != "bold" {
		t.Fatalf("rend = %q, %v; want bold, true", rend, ok)
	}
}

func TestConvertFormattingStrippedWhenDisabled(t *testing.T) {
	tree := parse(t, `<html><body><p><b>hi</b> there</p></body></html>`)
	opts := allOptions()
	opts.IncludeFormatting = false
	Convert(tree, opts)

	if find(tree, "b") != nil || find(tree, "hi") != nil {
		t.Fatal("formatting element should be stripped, not converted, when disabled")
	}
	p := find(tree, "p")
	if p == nil {
		t.Fatal("p element missing")
	}
	var text strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p)
	if !strings.Contains(text.String(), "hi") {
		t.Fatalf("stripped element's text not hoisted into parent: %q", text.String())
	}
}

func TestConvertHeadingGetsRend(t *testing.T) {
	tree := parse(t, `<html><body><h2>Title</h2></body></html>`)
	Convert(tree, allOptions())

	head := find(tree, "head")
	if head == nil {
		t.Fatal("expected a head element after converting <h2>")
	}
	if rend, ok := attr(head, "rend"); !ok || rend != "h2" {
		t.Fatalf("rend = %q, %v; want h2, true", rend, ok)
	}
}

func TestConvertAnchorBecomesRefWithTargetAttr(t *testing.T) {
	tree := parse(t, `<html><body><p><a href="https://example.com">link</a></p></body></html>`)
	Convert(tree, allOptions())

	ref := find(tree, "ref")
	if ref == nil {
		t.Fatal("expected a ref element after converting <a>")
	}
	if target, ok := attr(ref, "target"); !ok || target != "https://example.com" {
		t.Fatalf("target = %q, %v; want the href value, true", target, ok)
	}
}

func TestConvertLinksStrippedWhenDisabled(t *testing.T) {
	tree := parse(t, `<html><body><p><a href="https://example.com">link</a></p></body></html>`)
	opts := allOptions()
	opts.IncludeLinks = false
	Convert(tree, opts)

	if find(tree, "ref") != nil || find(tree, "a") != nil {
		t.Fatal("anchor should be stripped when links are disabled")
	}
}

func TestConvertImageBecomesGraphic(t *testing.T) {
	tree := parse(t, `<html><body><img src="a.png"></body></html>`)
	Convert(tree, allOptions())

	if find(tree, "graphic") == nil {
		t.Fatal("expected a graphic element after converting <img>")
	}
}

func TestConvertImageStrippedWhenDisabled(t *testing.T) {
	tree := parse(t, `<html><body><p>text</p><img src="a.png"></body></html>`)
	opts := allOptions()
	opts.IncludeImages = false
	Convert(tree, opts)

	if find(tree, "graphic") != nil || find(tree, "img") != nil {
		t.Fatal("image should be stripped entirely when images are disabled")
	}
}

func TestConvertTableStrippedWhenDisabled(t *testing.T) {
	tree := parse(t, `<html><body><table><tr><td>cell</td></tr></table></body></html>`)
	opts := allOptions()
	opts.IncludeTables = false
	Convert(tree, opts)

	if find(tree, "table") != nil {
		t.Fatal("table should be stripped when tables are disabled")
	}
}

func TestConvertScriptIsRemovedEntirely(t *testing.T) {
	tree := parse(t, `<html><body><p>keep</p><script>evil()</script></body></html>`)
	Convert(tree, allOptions())

	if find(tree, "script") != nil {
		t.Fatal("script element should be removed by conversion")
	}
}

func TestConvertLineBreakBecomesLb(t *testing.T) {
	tree := parse(t, `<html><body><p>a<br>b</p></body></html>`)
	Convert(tree, allOptions())

	if find(tree, "lb") == nil {
		t.Fatal("expected an lb element after converting <br>")
	}
}
