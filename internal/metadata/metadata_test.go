package metadata

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

func TestExtractPrefersOGTitleOverTitleTag(t *testing.T) {
	tree := parse(t, `<html><head>
		<meta property="og:title" content="Open Graph Title">
		<title>Plain Title</title>
	</head><body></body></html>`)

	r := Extract(tree, Params{})
	if r.Title != "Open Graph Title" {
		t.Fatalf("Title = %q; want the og:title value", r.Title)
	}
}

func TestExtractFallsBackToTitleTagThenH1(t *testing.T) {
	tree := parse(t, `<html><head><title>Page Title</title></head><body><h1>Heading</h1></body></html>`)
	r := Extract(tree, Params{})
	if r.Title != "Page Title" {
		t.Fatalf("Title = %q; want the <title> value", r.Title)
	}

	tree2 := parse(t, `<html><body><h1>Only A Heading</h1></body></html>`)
	r2 := Extract(tree2, Params{})
	if r2.Title != "Only A Heading" {
		t.Fatalf("Title = %q; want the <h1> value as last resort", r2.Title)
	}
}

func TestExtractAuthorRespectsBlacklist(t *testing.T) {
	tree := parse(t, `<html><head><meta name="author" content="Staff Writer"></head><body></body></html>`)
	r := Extract(tree, Params{AuthorBlacklist: []string{"Staff Writer"}})
	if r.Author != "" {
		t.Fatalf("Author = %q; want blacklisted author suppressed", r.Author)
	}
}

func TestExtractAuthorKeepsNonBlacklistedName(t *testing.T) {
	tree := parse(t, `<html><head><meta name="author" content="Jane Doe"></head><body></body></html>`)
	r := Extract(tree, Params{AuthorBlacklist: []string{"Staff Writer"}})
	if r.Author != "Jane Doe" {
		t.Fatalf("Author = %q; want Jane Doe", r.Author)
	}
}

func TestExtractLangFromHTMLAttribute(t *testing.T) {
	tree := parse(t, `<html lang="fr"><body><p>contenu</p></body></html>`)
	r := Extract(tree, Params{})
	if r.Lang != "fr" {
		t.Fatalf("Lang = %q; want fr", r.Lang)
	}
}

func TestExtractHostnameFromSourceURL(t *testing.T) {
	tree := parse(t, `<html><body></body></html>`)
	r := Extract(tree, Params{SourceURL: "https://example.com/articles/one"})
	if r.Hostname != "example.com" {
		t.Fatalf("Hostname = %q; want example.com", r.Hostname)
	}
	if r.URL != "https://example.com/articles/one" {
		t.Fatalf("URL = %q; want the source URL unchanged", r.URL)
	}
}

func TestExtractTagsSplitsCommaSeparatedKeywords(t *testing.T) {
	tree := parse(t, `<html><head><meta name="keywords" content="go, testing,  parsing"></head><body></body></html>`)
	r := Extract(tree, Params{})
	want := []string{"go", "testing", "parsing"}
	if len(r.Tags) != len(want) {
		t.Fatalf("Tags = %v; want %v", r.Tags, want)
	}
	for i, w := range want {
		if r.Tags[i] != w {
			t.Fatalf("Tags[%d] = %q; want %q", i, r.Tags[i], w)
		}
	}
}

func TestExtractAuthorFallsBackToBylineParagraphWhenNoMetaOrClass(t *testing.T) {
	tree := parse(t, `<html><body><p>By Jane Reporter</p><p>The rest of the story follows here.</p></body></html>`)
	r := Extract(tree, Params{})
	if r.Author != "Jane Reporter" {
		t.Fatalf("Author = %q; want the byline-paragraph fallback to find Jane Reporter", r.Author)
	}
}

func TestExtractDescriptionFromMetaTag(t *testing.T) {
	tree := parse(t, `<html><head><meta name="description" content="A short description."></head><body></body></html>`)
	r := Extract(tree, Params{})
	if r.Description != "A short description." {
		t.Fatalf("Description = %q; want the meta description", r.Description)
	}
}
