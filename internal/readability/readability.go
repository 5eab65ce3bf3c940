package readability

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Options configures the scorer. The zero value is the default.
type Options struct {
	// CharThreshold is the minimum text length of a result whose score is
	// not positive (the plain <body> fallback included); Parse refuses a
	// shorter one as too short.
	CharThreshold int
}

// Article is the result of Parse: the best-scoring candidate's outer HTML
// plus the plain-text length it carries.
type Article struct {
	Content string
	Length  int
}

// Readability scores candidate elements of a parsed document and picks
// the one most likely to hold the article body.
type Readability struct {
	doc  *goquery.Document
	opts Options
}

// NewFromHTML parses html and returns a Readability ready to Parse. opts
// may be nil to use the defaults.
func NewFromHTML(html string, opts *Options) (*Readability, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	o := Options{CharThreshold: DefaultCharThreshold}
	if opts != nil && opts.CharThreshold > 0 {
		o.CharThreshold = opts.CharThreshold
	}
	return &Readability{doc: doc, opts: o}, nil
}

// Parse scores every candidate tag (TagsToScore) and returns the
// highest-scoring one as an Article. Script/style/chrome elements are
// stripped before scoring so they can't win on raw text length alone.
func (r *Readability) Parse() (*Article, error) {
	if r.doc == nil || r.doc.Selection.Length() == 0 {
		return nil, errors.New("readability: empty document")
	}
	r.doc.Find("script, style, noscript, nav, aside, footer, form").Remove()

	best, bestScore := r.topCandidate()
	if best == nil || best.Length() == 0 {
		best = r.doc.Find("body")
		bestScore = -1
	}
	if best == nil || best.Length() == 0 {
		return nil, errors.New("readability: no candidate content found")
	}

	text := strings.TrimSpace(best.Text())
	if len(text) < r.opts.CharThreshold && bestScore <= 0 {
		return nil, errors.New("readability: candidate too short")
	}

	content, err := goquery.OuterHtml(best)
	if err != nil {
		return nil, err
	}
	return &Article{Content: content, Length: len(text)}, nil
}

// topCandidate returns the highest-scoring element among TagsToScore and
// its score, or (nil, -1) when the document carries no scorable tag.
func (r *Readability) topCandidate() (*goquery.Selection, float64) {
	var best *goquery.Selection
	bestScore := -1.0
	r.doc.Find(strings.Join(TagsToScore, ", ")).Each(func(_ int, s *goquery.Selection) {
		score := scoreNode(s)
		if score > bestScore {
			bestScore = score
			best = s
		}
	})
	return best, bestScore
}

// scoreNode rewards comma count and text length (the same two base
// signals the teacher's grabArticle uses per candidate) and folds in
// class/id keyword weight, then discounts the result by link density so
// link-farm navigation can't outscore prose.
func scoreNode(s *goquery.Selection) float64 {
	text := strings.TrimSpace(s.Text())
	if text == "" {
		return -1.0
	}

	score := 1.0
	score += float64(strings.Count(text, ","))
	score += float64(min(len(text)/100, 3))
	score += classWeight(s)
	score -= linkDensity(s) * score

	return score
}

// classWeight applies the positive/negative/unlikely-candidate keyword
// tables to an element's class and id attributes.
func classWeight(s *goquery.Selection) float64 {
	weight := 0.0
	class, _ := s.Attr("class")
	id, _ := s.Attr("id")
	for _, v := range []string{class, id} {
		if v == "" {
			continue
		}
		if RegexpNegative.MatchString(v) {
			weight -= 25
		}
		if RegexpPositive.MatchString(v) {
			weight += 25
		}
		if RegexpUnlikelyCandidates.MatchString(v) && !RegexpMaybeCandidate.MatchString(v) {
			weight -= 25
		}
	}
	return weight
}

// linkDensity is the fraction of s's text that sits inside <a> tags.
func linkDensity(s *goquery.Selection) float64 {
	text := s.Text()
	if len(text) == 0 {
		return 0
	}
	linkText := s.Find("a").Text()
	return float64(len(linkText)) / float64(len(text))
}
