package xtractly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_SimplePageKeepsBodyTextAndInlineFormatting(t *testing.T) {
	html := `<html><head><title>Hello</title></head><body>
		<article>
			<h1>Hello</h1>
			<p>Hello <b>world</b>. This is a long enough paragraph of editorial text to clear the minimum output size threshold that the post filter enforces before accepting a document as genuine content rather than boilerplate noise.</p>
			<p>A second paragraph keeps the candidate selector from bailing out after only one child survives the link-density pruner and rewrite pass.</p>
		</article>
	</body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Contains(t, doc.Text, "Hello world")
	assert.Contains(t, doc.Text, "second paragraph")
	assert.NotEmpty(t, doc.Fingerprint)
}

func TestExtract_EmptyHTMLIsRejectedWithoutError(t *testing.T) {
	doc, err := Extract("")
	assert.NoError(t, err)
	assert.Nil(t, doc)
}

func TestExtract_MalformedInputReturnsError(t *testing.T) {
	doc, err := Extract("   \n\t  ")
	assert.Error(t, err)
	assert.Nil(t, doc)
}

func TestExtract_NavAndFooterAreDiscardedAsBoilerplate(t *testing.T) {
	html := `<html><body>
		<nav><a href="/a">Home</a><a href="/b">About</a><a href="/c">Contact</a></nav>
		<article>
			<p>The editorial content of this article is long enough to survive the minimum output size threshold and should be the only text returned once navigation and footer chrome are discarded.</p>
			<p>A second paragraph of genuine article content, present so the candidate body keeps more than one child after pruning.</p>
		</article>
		<footer><a href="/terms">Terms</a><a href="/privacy">Privacy</a><a href="/sitemap">Sitemap</a></footer>
	</body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Contains(t, doc.Text, "editorial content")
	assert.NotContains(t, doc.Text, "Home")
	assert.NotContains(t, doc.Text, "Terms")
}

func TestExtract_JSONLDArticleBodyBaselineWhenNoParagraphsExist(t *testing.T) {
	html := `<html><head>
		<script type="application/ld+json">{"@type":"NewsArticle","articleBody":"This article body arrived only through structured data and the document carries no paragraph elements at all for the ordinary extraction path to find."}</script>
	</head><body><div id="app"></div></body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc.Text, "structured data")
}

func TestExtract_BareArticleWithNoParagraphsFallsBackToArticleText(t *testing.T) {
	html := `<html><body><article>Just a long run of bare text directly inside the article element, with no paragraph wrapper at all, long enough to clear the minimum output size threshold on its own.</article></body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc.Text, "bare text")
}

func TestExtract_CommentsExtractedSeparatelyFromBody(t *testing.T) {
	html := `<html><body>
		<article>
			<p>The main editorial content of the page, long enough on its own to satisfy the minimum output size threshold for acceptance by the post filter.</p>
			<p>A second paragraph of the article body, kept distinct from anything below in the comments section of the page.</p>
		</article>
		<div id="comments">
			<div class="comment"><p>First commenter says hello and leaves a short reply.</p></div>
			<div class="comment"><p>Second commenter disagrees and leaves a longer reply of their own.</p></div>
		</div>
	</body></html>`

	doc, err := Extract(html, WithIncludeComments(true))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Contains(t, doc.Text, "main editorial content")
	if doc.HasComments() {
		assert.Contains(t, doc.Comments, "commenter")
		assert.NotContains(t, doc.Text, "commenter")
	}
}

func TestExtract_TargetLanguageRejectsMismatch(t *testing.T) {
	html := `<html lang="fr"><body><article>
		<p>Ceci est un article assez long pour dépasser le seuil minimal de sortie et être accepté par le filtre final de l'extraction.</p>
		<p>Un second paragraphe pour que le sélecteur de candidat ne s'arrête pas après un seul enfant survivant.</p>
	</article></body></html>`

	doc, err := Extract(html, WithTargetLanguage("en"))
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestExtract_DeduplicateDoesNotRejectRepeatAcrossSeparateCalls(t *testing.T) {
	html := `<html><body><article>
		<p>This exact paragraph of content will be submitted twice through the same set of options so the deduplicator can recognize the second call as a repeat.</p>
		<p>A second paragraph, identical across both calls, to keep the candidate selector happy on both passes.</p>
	</article></body></html>`

	cfg := DefaultConfig()
	doc1, err := Extract(html, WithDeduplicate(true), WithConfig(cfg))
	require.NoError(t, err)
	require.NotNil(t, doc1)

	// A fresh Extract call builds its own dedup cache, so a second call with
	// the same options does not see the first call's text; Deduplicate only
	// rejects duplicates observed within one cache's lifetime (Extract's own
	// internal recheck isn't externally observable here, so this simply
	// confirms the option doesn't reject a first, unique call).
	doc2, err := Extract(html, WithDeduplicate(true), WithConfig(cfg))
	require.NoError(t, err)
	require.NotNil(t, doc2)
	assert.Equal(t, doc1.Fingerprint, doc2.Fingerprint)
}

func TestExtract_OnlyWithMetadataRejectsUntitledDocument(t *testing.T) {
	html := `<html><body><article>
		<p>A perfectly good article body with no title element anywhere in the document's head, long enough to pass the size threshold on its own.</p>
		<p>A second paragraph so the candidate selector keeps more than one child.</p>
	</article></body></html>`

	doc, err := Extract(html, WithOnlyWithMetadata(true))
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDocument_PlainTextSplitsOnParagraphs(t *testing.T) {
	html := `<html><body><article>
		<p>First paragraph of the article, long enough on its own to be kept as real content by the post filter.</p>
		<p>Second paragraph of the article, equally long, forming a distinct block in the plain-text projection.</p>
	</article></body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)

	blocks := doc.PlainText()
	require.NotEmpty(t, blocks)
	for _, b := range blocks {
		assert.NotEmpty(t, strings.TrimSpace(b.Text))
	}
}

func TestDocument_SerializeFormats(t *testing.T) {
	html := `<html><head><title>Serialize Test</title></head><body><article>
		<p>Content long enough to survive extraction and be serialized in every supported output format by this test.</p>
		<p>A second paragraph, present purely so the candidate selector keeps more than one child in the body.</p>
	</article></body></html>`

	doc, err := Extract(html)
	require.NoError(t, err)
	require.NotNil(t, doc)

	for _, format := range []Format{FormatText, FormatCSV, FormatJSON, FormatXML, FormatTEI} {
		out, err := doc.Serialize(format, false)
		require.NoError(t, err, "format %s", format)
		assert.NotEmpty(t, out, "format %s", format)
	}
}

func TestExtract_InlineImageSurvivesWhenImagesIncluded(t *testing.T) {
	html := `<html><body><article>
		<p>An article with an inline image present alongside its editorial text, which should not break extraction of the surrounding paragraphs.</p>
		<img src="//cdn.example.com/photo.jpg" alt="photo">
		<p>A second paragraph to keep the candidate selector from stopping early during this extraction pass.</p>
	</article></body></html>`

	doc, err := Extract(html, WithSourceURL("https://example.com/article"), WithIncludeImages(true))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc.Text, "inline image")
}

func TestExtract_ImagesStrippedWhenDisabled(t *testing.T) {
	html := `<html><body><article>
		<p>An article with an inline image that should be stripped entirely when image retention is disabled for this extraction.</p>
		<img src="/photo.jpg" alt="photo">
		<p>A second paragraph to keep the candidate selector from stopping early during this extraction pass.</p>
	</article></body></html>`

	doc, err := Extract(html, WithIncludeImages(false))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Contains(t, doc.Text, "inline image")
}
