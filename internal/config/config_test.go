package config

import "testing"

func TestDefaultConfigHasPositiveThresholds(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.MinExtractedSize <= 0 {
		t.Fatal("MinExtractedSize should be positive")
	}
	if cfg.MinOutputSize <= 0 {
		t.Fatal("MinOutputSize should be positive")
	}
	if cfg.DoubleLengthMultiplier != 2 {
		t.Fatalf("DoubleLengthMultiplier = %d; want 2", cfg.DoubleLengthMultiplier)
	}
}

func TestDefaultConfigReturnsFreshInstance(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.MinExtractedSize = 999
	if b.MinExtractedSize == 999 {
		t.Fatal("DefaultConfig() should return an independent instance each call")
	}
}
