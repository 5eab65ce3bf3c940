package xtractly

import (
	"github.com/jrmoran/xtractly/internal/config"
)

// Config re-exports the size thresholds and arbiter constants so callers
// never need to import internal/config directly.
type Config = config.Config

// DefaultConfig returns the default thresholds (spec §4.7/§4.8).
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// Options holds the feature toggles and thresholds spec §3 enumerates.
// Built through functional options, following the teacher's own
// Option func(*ExtractionOptions) pattern.
type Options struct {
	SourceURL        string
	RecordID         string
	AuthorBlacklist  []string
	TargetLanguage   string

	IncludeComments   bool
	IncludeTables     bool
	IncludeImages     bool
	IncludeFormatting bool
	IncludeLinks      bool

	FavorPrecision bool
	FavorRecall    bool

	Deduplicate      bool
	NoFallback       bool
	OnlyWithMetadata bool
	MaxTreeSize      int

	Config *config.Config
}

// Option configures an Options value.
type Option func(*Options)

// DefaultOptions returns the toggles matching spec defaults: comments,
// tables, images, formatting, and links all included; no precision/recall
// bias; deduplication off; fallback enabled; no tree-size cap.
func DefaultOptions() Options {
	return Options{
		IncludeComments:   true,
		IncludeTables:     true,
		IncludeImages:     true,
		IncludeFormatting: true,
		IncludeLinks:      true,
		Config:            config.DefaultConfig(),
	}
}

// WithSourceURL sets the page's canonical URL, used for hostname
// derivation and protocol-relative image rewriting.
func WithSourceURL(url string) Option {
	return func(o *Options) { o.SourceURL = url }
}

// WithRecordID tags the result with a caller-supplied identifier.
func WithRecordID(id string) Option {
	return func(o *Options) { o.RecordID = id }
}

// WithAuthorBlacklist suppresses byline matches equal to any of names
// (press-agency bylines, "admin", and the like).
func WithAuthorBlacklist(names ...string) Option {
	return func(o *Options) { o.AuthorBlacklist = names }
}

// WithTargetLanguage rejects the document unless its declared or detected
// language matches a BCP-47 tag.
func WithTargetLanguage(lang string) Option {
	return func(o *Options) { o.TargetLanguage = lang }
}

// WithIncludeComments toggles comments extraction.
func WithIncludeComments(v bool) Option {
	return func(o *Options) { o.IncludeComments = v }
}

// WithIncludeTables toggles table retention.
func WithIncludeTables(v bool) Option {
	return func(o *Options) { o.IncludeTables = v }
}

// WithIncludeImages toggles image retention.
func WithIncludeImages(v bool) Option {
	return func(o *Options) { o.IncludeImages = v }
}

// WithIncludeFormatting toggles inline emphasis retention.
func WithIncludeFormatting(v bool) Option {
	return func(o *Options) { o.IncludeFormatting = v }
}

// WithIncludeLinks toggles hyperlink retention.
func WithIncludeLinks(v bool) Option {
	return func(o *Options) { o.IncludeLinks = v }
}

// WithFavorPrecision biases the Candidate Selector and Link-Density Pruner
// toward stricter boilerplate rejection, at the cost of recall.
func WithFavorPrecision(v bool) Option {
	return func(o *Options) { o.FavorPrecision = v }
}

// WithFavorRecall biases extraction toward keeping more text, widening
// potential_tags earlier and short-circuiting the Arbiter in the custom
// extractor's favor.
func WithFavorRecall(v bool) Option {
	return func(o *Options) { o.FavorRecall = v }
}

// WithDeduplicate rejects documents whose body text the fingerprint cache
// has already seen.
func WithDeduplicate(v bool) Option {
	return func(o *Options) { o.Deduplicate = v }
}

// WithNoFallback disables the Arbiter's fallback extractors entirely.
func WithNoFallback(v bool) Option {
	return func(o *Options) { o.NoFallback = v }
}

// WithOnlyWithMetadata rejects documents missing a title.
func WithOnlyWithMetadata(v bool) Option {
	return func(o *Options) { o.OnlyWithMetadata = v }
}

// WithMaxTreeSize caps the body's child count (spec §4.8); 0 disables the
// cap.
func WithMaxTreeSize(n int) Option {
	return func(o *Options) { o.MaxTreeSize = n }
}

// WithConfig overrides the size thresholds and arbiter constants.
func WithConfig(cfg *config.Config) Option {
	return func(o *Options) { o.Config = cfg }
}
