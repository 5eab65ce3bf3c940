package dedup

import "testing"

func TestFingerprintIsStableAndCaseInsensitive(t *testing.T) {
	a := Fingerprint("Hello World")
	b := Fingerprint("hello world")
	if a != b {
		t.Fatalf("Fingerprint differs by case: %q vs %q", a, b)
	}
	if a != Fingerprint("  Hello World  ") {
		t.Fatalf("Fingerprint not trim-invariant")
	}
}

func TestFingerprintDiffersForDifferentText(t *testing.T) {
	if Fingerprint("a") == Fingerprint("b") {
		t.Fatal("distinct inputs produced the same fingerprint")
	}
}

func TestIsDuplicateTextDetectsExactRepeat(t *testing.T) {
	c := NewCache()
	text := "This is a unique sentence for this test."

	if c.IsDuplicateText(text) {
		t.Fatal("first sighting reported as duplicate")
	}
	if !c.IsDuplicateText(text) {
		t.Fatal("second sighting of identical text not reported as duplicate")
	}
}

func TestIsDuplicateTextEmptyNeverDuplicate(t *testing.T) {
	c := NewCache()
	if c.IsDuplicateText("") {
		t.Fatal("empty text reported as duplicate")
	}
	if c.IsDuplicateText("   ") {
		t.Fatal("whitespace-only text reported as duplicate")
	}
}

func TestIsDuplicateTextNearDuplicateShortStrings(t *testing.T) {
	c := NewCache()
	c.IsDuplicateText("Continue reading the full story here")
	if !c.IsDuplicateText("Continue reading the full story here.") {
		t.Fatal("near-duplicate short text (trailing punctuation) not flagged")
	}
}

func TestIsDuplicateTextDistinctLongTextNotFlagged(t *testing.T) {
	c := NewCache()
	c.IsDuplicateText("The quick brown fox jumps over the lazy dog near the river bank at dawn.")
	if c.IsDuplicateText("A completely unrelated sentence discussing quarterly financial results instead.") {
		t.Fatal("unrelated text incorrectly flagged as duplicate")
	}
}

func TestIsDuplicateBodyDelegatesToText(t *testing.T) {
	c := NewCache()
	body := "A full article body used to test the whole-document duplicate check."
	if c.IsDuplicateBody(body) {
		t.Fatal("first body reported as duplicate")
	}
	if !c.IsDuplicateBody(body) {
		t.Fatal("repeated body not reported as duplicate")
	}
}
