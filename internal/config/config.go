// Package config holds the tunable thresholds and feature toggles consumed
// by the extraction core (spec §3).
package config

// Config holds the size thresholds and arbiter constants that govern when
// the custom extraction result is accepted, retried, or replaced by a
// fallback extractor.
type Config struct {
	// MinExtractedSize is the threshold below which custom extraction is
	// considered weak and a fallback is attempted.
	MinExtractedSize int

	// MinExtractedCommSize is the threshold for comments to be considered
	// present at all.
	MinExtractedCommSize int

	// MinOutputSize is the final rejection threshold for body text.
	MinOutputSize int

	// MinOutputCommSize is the final rejection threshold when only
	// comments remain.
	MinOutputCommSize int

	// RecallLengthMultiplier scales MinExtractedSize in the
	// favor_recall short-circuit (§4.7: "L1 > 10 x MinExtractedSize").
	RecallLengthMultiplier int

	// DoubleLengthMultiplier is the "2x" constant from the arbiter's
	// length-ratio comparisons.
	DoubleLengthMultiplier int

	// SanitizedSignatureLengthMultiplier is the "10x" constant gating the
	// paragraph-classifier retry after a sanitized-signature match.
	SanitizedSignatureLengthMultiplier int
}

// DefaultConfig returns the default thresholds, matching the constants
// named in spec §4.7 and §4.8.
func DefaultConfig() *Config {
	return &Config{
		MinExtractedSize:                   250,
		MinExtractedCommSize:               1,
		MinOutputSize:                      10,
		MinOutputCommSize:                  10,
		RecallLengthMultiplier:             10,
		DoubleLengthMultiplier:             2,
		SanitizedSignatureLengthMultiplier: 10,
	}
}
