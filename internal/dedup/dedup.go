// Package dedup implements the Deduplicator and Fingerprint collaborators
// (spec §6): an LRU-bounded cache of text fingerprints, with a near-
// duplicate check via Levenshtein distance for short paragraphs where an
// exact hash match would miss minor boilerplate variation (trailing
// "Continue reading..." links, timestamp suffixes).
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jrmoran/xtractly/internal/lru"
)

const defaultCacheSize = 2048

// nearDuplicateMaxLen bounds the Levenshtein fallback to short strings;
// comparing full articles pairwise would be quadratic for no benefit.
const nearDuplicateMaxLen = 200

// nearDuplicateThreshold is the minimum similarity (1 minus edit distance
// over the longer length) at which two strings count as duplicates.
const nearDuplicateThreshold = 0.9

// Cache tracks recently seen text, implementing rewrite.Deduper.
type Cache struct {
	seen    *lru.Cache
	samples map[string][]string
}

// NewCache builds a Deduplicator cache bounded to the default capacity.
func NewCache() *Cache {
	return &Cache{seen: lru.NewCache(defaultCacheSize), samples: make(map[string][]string)}
}

// IsDuplicateText reports whether text has already been seen (exact
// fingerprint match, or near-duplicate by edit distance for short text),
// and records it as seen either way.
func (c *Cache) IsDuplicateText(text string) bool {
	norm := strings.ToLower(strings.TrimSpace(text))
	if norm == "" {
		return false
	}
	fp := Fingerprint(norm)

	if count, ok := c.seen.Get(fp); ok {
		c.seen.Add(fp, count+1)
		return true
	}

	dup := false
	if len(norm) <= nearDuplicateMaxLen {
		bucket := bucketKey(norm)
		for _, prior := range c.samples[bucket] {
			if isNearDuplicate(norm, prior) {
				dup = true
				break
			}
		}
		c.samples[bucket] = append(c.samples[bucket], norm)
	}

	c.seen.Add(fp, 1)
	return dup
}

// IsDuplicateBody applies the same test to a whole body's flattened text,
// the "body → dup/not-dup" half of the Deduplicator contract.
func (c *Cache) IsDuplicateBody(bodyText string) bool {
	return c.IsDuplicateText(bodyText)
}

// bucketKey groups near-duplicate candidates by length band and first word,
// so the Levenshtein comparison never runs against the whole sample set.
func bucketKey(norm string) string {
	firstWord := norm
	if i := strings.IndexByte(norm, ' '); i >= 0 {
		firstWord = norm[:i]
	}
	return firstWord + ":" + lengthBand(len(norm))
}

func lengthBand(n int) string {
	switch {
	case n < 20:
		return "xs"
	case n < 60:
		return "s"
	case n < 120:
		return "m"
	default:
		return "l"
	}
}

func isNearDuplicate(a, b string) bool {
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return true
	}
	similarity := 1.0 - float64(dist)/float64(maxLen)
	return similarity >= nearDuplicateThreshold
}

// Fingerprint implements the Fingerprint collaborator: text → opaque
// identifier string (spec §6).
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return hex.EncodeToString(sum[:])
}
