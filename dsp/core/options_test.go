package core

import "testing"

func TestApplyStreamOptions(t *testing.T) {
	cfg := ApplyStreamOptions(WithFrequency(125), WithBlockSize(512))
	if cfg.Frequency != 125 {
		t.Fatalf("frequency = %v, want 125", cfg.Frequency)
	}
	if cfg.BlockSize != 512 {
		t.Fatalf("block size = %d, want 512", cfg.BlockSize)
	}
}

func TestInvalidStreamOptionsIgnored(t *testing.T) {
	cfg := ApplyStreamOptions(WithFrequency(0), WithBlockSize(-1), nil)
	def := DefaultStreamConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}
