package etree

import "testing"

func TestIsValidTag(t *testing.T) {
	if !IsValidTag(P) {
		t.Fatal("p should be a valid vocabulary tag")
	}
	if IsValidTag("div") {
		t.Fatal("div should not be a valid vocabulary tag")
	}
}

func TestNewAndSubElement(t *testing.T) {
	body := New(Body)
	p := body.SubElement(P)
	p.SetText("hello")

	if body.Tag() != Body {
		t.Fatalf("body.Tag() = %q; want %q", body.Tag(), Body)
	}
	children := body.Children()
	if len(children) != 1 || children[0].Tag() != P {
		t.Fatalf("body.Children() = %v; want one p", children)
	}
	if children[0].Text() != "hello" {
		t.Fatalf("p.Text() = %q; want hello", children[0].Text())
	}
}

func TestAttrRoundTrip(t *testing.T) {
	e := New(Ref)
	e.SetAttr("target", "https://example.com")

	v, ok := e.Attr("target")
	if !ok || v != "https://example.com" {
		t.Fatalf("Attr(target) = %q, %v; want the set URL, true", v, ok)
	}
	if v := e.AttrOr("missing", "fallback"); v != "fallback" {
		t.Fatalf("AttrOr(missing) = %q; want fallback", v)
	}

	e.RemoveAttr("target")
	if _, ok := e.Attr("target"); ok {
		t.Fatal("target attribute still present after RemoveAttr")
	}
}

func TestAddChildAndRemoveChild(t *testing.T) {
	body := New(Body)
	p := New(P)
	body.AddChild(p)
	if len(body.Children()) != 1 {
		t.Fatalf("len(Children()) = %d after AddChild; want 1", len(body.Children()))
	}
	body.RemoveChild(p)
	if len(body.Children()) != 0 {
		t.Fatalf("len(Children()) = %d after RemoveChild; want 0", len(body.Children()))
	}
}

func TestIsEmptyPlaceholder(t *testing.T) {
	p := New(P)
	if !p.IsEmptyPlaceholder() {
		t.Fatal("empty p should be an empty placeholder")
	}
	p.SetText("content")
	if p.IsEmptyPlaceholder() {
		t.Fatal("p with text should not be an empty placeholder")
	}
}

func TestPruneEmptyPlaceholders(t *testing.T) {
	body := New(Body)
	keep := body.SubElement(P)
	keep.SetText("keep me")
	body.SubElement(P) // empty, should be pruned
	body.SubElement(Hi) // empty, should be pruned

	PruneEmptyPlaceholders(body)

	children := body.Children()
	if len(children) != 1 {
		t.Fatalf("len(Children()) = %d after prune; want 1", len(children))
	}
	if children[0].Text() != "keep me" {
		t.Fatalf("remaining child text = %q; want %q", children[0].Text(), "keep me")
	}
}

func TestIterTextFlattensTextAndTail(t *testing.T) {
	body := New(Body)
	p := body.SubElement(P)
	p.SetText("Hello ")
	hi := p.SubElement(Hi)
	hi.SetText("world")
	hi.SetTail(".")

	got := IterText(body, " ")
	want := "Hello world ."
	if got != want {
		t.Fatalf("IterText() = %q; want %q", got, want)
	}
}

func TestRemoveTrailingHeadings(t *testing.T) {
	body := New(Body)
	p := body.SubElement(P)
	p.SetText("content")
	h := body.SubElement(Head)
	h.SetText("trailing heading")

	RemoveTrailingHeadings(body)

	children := body.Children()
	if len(children) != 1 || children[0].Tag() != P {
		t.Fatalf("Children() after RemoveTrailingHeadings = %v; want only the paragraph", children)
	}
}

func TestRemoveTrailingHeadingsKeepsLeadingHeading(t *testing.T) {
	body := New(Body)
	h := body.SubElement(Head)
	h.SetText("leading heading")
	p := body.SubElement(P)
	p.SetText("content")

	RemoveTrailingHeadings(body)

	children := body.Children()
	if len(children) != 2 {
		t.Fatalf("len(Children()) = %d; want 2 (leading heading kept)", len(children))
	}
}
