package simplifiers

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestFindMainContentNodePrefersContentClassOverNav(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>
		<nav class="site-nav"><a href="/">Home</a> <a href="/a">About</a> <a href="/c">Contact</a> <a href="/d">More</a></nav>
		<div class="article-content">
			<p>` + strings.Repeat("Real article prose with plenty of words. ", 10) + `</p>
		</div>
	</body></html>`))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}

	best := FindMainContentNode(doc)
	if best == nil || best.Length() == 0 {
		t.Fatal("FindMainContentNode returned nothing")
	}
	if got := best.Text(); strings.Contains(got, "Home") {
		t.Fatalf("selected node text = %q; nav chrome should have lost", got)
	}
}

func TestFindMainContentNodeFallsBackToBodyWhenNothingScores(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body>short</body></html>`))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}
	best := FindMainContentNode(doc)
	if best == nil || best.Length() == 0 {
		t.Fatal("FindMainContentNode returned nothing")
	}
	if goquery.NodeName(best) != "body" {
		t.Fatalf("NodeName = %q; want body fallback", goquery.NodeName(best))
	}
}

func TestContentScorePenalizesNonContentPattern(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="sidebar-widget"><p>` + strings.Repeat("padding text here. ", 20) + `</p></div>`))
	if err != nil {
		t.Fatalf("NewDocumentFromReader: %v", err)
	}
	sel := doc.Find("div")
	plain := contentScore(sel)

	doc2, _ := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="article-content"><p>` + strings.Repeat("padding text here. ", 20) + `</p></div>`))
	sel2 := doc2.Find("div")
	boosted := contentScore(sel2)

	if plain >= boosted {
		t.Fatalf("sidebar score %f should be lower than article-content score %f", plain, boosted)
	}
}
