/*
Package xtractly extracts the primary editorial content — article body and,
optionally, reader comments — from an arbitrary HTML document, discarding
navigation, sidebars, advertisements, footers, comment forms, and share
widgets.

Basic usage:

	doc, err := xtractly.Extract(html, xtractly.WithSourceURL(pageURL))
	if err != nil {
	    // malformed input or reader I/O error
	}
	if doc == nil {
	    // document rejected (too small, wrong language, duplicate, ...)
	    return
	}
	fmt.Println(doc.Title)
	fmt.Println(doc.Text)

Extraction runs a fixed pipeline: the Cleaner strips known boilerplate
subtrees; the Tag Converter rewrites the DOM into a closed internal
vocabulary and drops scripts and styles; the Comments Extractor isolates and detaches the
comment region; the Candidate Selector tries a ranked list of body-locating
path expressions, pruning link-dense boilerplate and rewriting the winner
through the Element Rewriter; Wild-Text Recovery re-scans the document when
the primary pass comes up short; and the Arbiter compares the custom result
against a readability-like and a paragraph-classifier-like fallback before
a final Post-Filter enforces size, language, and duplicate constraints.

Extraction is synchronous and single-threaded: one call processes one
document to completion with no shared state across calls. Callers wanting
to process many documents concurrently should parallelize at the call site.
*/
package xtractly
