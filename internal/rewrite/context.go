package rewrite

import "github.com/jrmoran/xtractly/internal/config"

// defaultEnumerableTags is tags_to_enumerate's default set (spec §4.3):
// container tags whose own envelope is dropped while their children are
// hoisted into the current parent.
var defaultEnumerableTags = map[string]bool{
	"article": true, "main": true, "section": true, "header": true,
}

// imageEnumerableTags is added to the enumerable set when images are
// permitted (spec §4.3: "plus {figure, picture, source} when images are
// enabled").
var imageEnumerableTags = map[string]bool{
	"figure": true, "picture": true, "source": true,
}

// formattingProtectingTags are the parents under which a bare inline
// element (hi/ref/span) is emitted directly rather than wrapped in a new p
// (spec §4.3's Formatting policy).
var formattingProtectingTags = map[string]bool{
	"cell": true, "head": true, "hi": true, "item": true,
	"p": true, "quote": true, "td": true,
}

// Options mirrors the feature toggles §3 lists that the rewriter itself
// consults (the Tag Converter has already gated presence/absence of
// formatting/table/image/link tags; the rewriter additionally consults
// IncludeTables/IncludeImages when deciding whether to delegate to the
// Table/Image policies at all).
type Options struct {
	IncludeTables     bool
	IncludeImages     bool
	IncludeLinks      bool
	IncludeFormatting bool
	FavorPrecision    bool
	FavorRecall       bool
}

// Context is the "rewrite context" record §9 asks for: a small immutable
// value type threaded through the paragraph recursion instead of hidden
// state, carrying the per-call flags handle_paragraphs_child depends on.
type Context struct {
	Opts            Options
	Config          *config.Config
	Dedup           Deduper
	PotentialTags   map[string]bool
	EnumerableTags  map[string]bool
	IsRoot          bool
	IsLastOfRoot    bool
	HasTail         bool
	NextText        string
}

// NewContext builds the root paragraph context for a fresh extraction
// round. potentialTags is the caller-owned base set (spec §4.4 step 6 may
// enlarge a copy of it with "div" for a single round without mutating this
// one).
func NewContext(opts Options, cfg *config.Config, dedup Deduper, potentialTags map[string]bool) Context {
	enum := map[string]bool{}
	for k := range defaultEnumerableTags {
		enum[k] = true
	}
	if opts.IncludeImages {
		for k := range imageEnumerableTags {
			enum[k] = true
		}
	}
	return Context{
		Opts:           opts,
		Config:         cfg,
		Dedup:          dedup,
		PotentialTags:  potentialTags,
		EnumerableTags: enum,
		IsRoot:         true,
	}
}

// WithPotentialTags returns a copy of ctx with an extra tag enabled, used by
// the Candidate Selector (step 6) and Wild-Text Recovery (step 4) to widen
// acceptance for a single round without mutating the caller's set.
func (ctx Context) WithPotentialTags(extra ...string) Context {
	next := make(map[string]bool, len(ctx.PotentialTags)+len(extra))
	for k, v := range ctx.PotentialTags {
		next[k] = v
	}
	for _, t := range extra {
		next[t] = true
	}
	ctx.PotentialTags = next
	return ctx
}

// child derives the context for recursing into a non-root paragraph child.
func (ctx Context) child(isLastOfRoot, hasTail bool, nextText string) Context {
	ctx.IsRoot = false
	ctx.IsLastOfRoot = isLastOfRoot
	ctx.HasTail = hasTail
	ctx.NextText = nextText
	return ctx
}

// DefaultPotentialTags is the paragraph rewriter's baseline permitted child
// set before any round widens it with "div".
func DefaultPotentialTags() map[string]bool {
	return map[string]bool{
		"p": true, "hi": true, "head": true, "ref": true, "list": true,
		"quote": true, "code": true, "graphic": true, "table": true, "lb": true,
	}
}
