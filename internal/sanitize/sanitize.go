// Package sanitize implements the Tree sanitizer collaborator (spec §6):
// "body, formatting/links/images/tables flags → sanitized triple". It also
// exposes an HTML-level pass over bluemonday for defense-in-depth before the
// HTML loader parses untrusted input, since the Cleaner only removes
// subtrees matched by its path expressions, not an exhaustive sanitizer
// policy.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/jrmoran/xtractly/internal/etree"
)

// Options mirrors the feature flags the sanitizer pass consults.
type Options struct {
	IncludeFormatting bool
	IncludeLinks      bool
	IncludeImages     bool
	IncludeTables     bool
}

var htmlPolicy = bluemonday.UGCPolicy()

// SanitizeHTML strips scripting and dangerous markup from raw HTML before
// it ever reaches the loader/parser.
func SanitizeHTML(raw string) string {
	return htmlPolicy.Sanitize(raw)
}

// SanitizeTree removes formatting/link/image/table tags from body according
// to opts (spec §4.7's post-readability sanitizer pass), returning the
// sanitized body, its flattened text, and that text's length.
func SanitizeTree(body *etree.Element, opts Options) (*etree.Element, string, int) {
	strip(body, opts)
	etree.PruneEmptyPlaceholders(body)
	text := etree.IterText(body, " ")
	return body, text, len(text)
}

func strip(e *etree.Element, opts Options) {
	for _, c := range e.Children() {
		switch c.Tag() {
		case etree.Hi:
			if !opts.IncludeFormatting {
				hoist(e, c)
				continue
			}
		case etree.Ref:
			if !opts.IncludeLinks {
				hoist(e, c)
				continue
			}
		case etree.Graphic:
			if !opts.IncludeImages {
				e.RemoveChild(c)
				continue
			}
		case etree.Table:
			if !opts.IncludeTables {
				e.RemoveChild(c)
				continue
			}
		}
		strip(c, opts)
	}
}

// hoist removes child but keeps its own children and text attached at the
// parent level, preserving inline content while dropping the wrapper tag.
func hoist(parent, child *etree.Element) {
	for _, gc := range child.Children() {
		parent.AddChild(gc)
	}
	parent.RemoveChild(child)
}
