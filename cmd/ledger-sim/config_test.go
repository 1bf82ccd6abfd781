package main

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateConfigRejectsEmptySeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedHex = ""
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error for empty seed_hex")
	}
}

func TestValidateConfigRejectsBadHex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SeedHex = "not-hex"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error for invalid seed_hex")
	}
}

func TestValidateConfigRejectsBadLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "verbose"
	if err := ValidateConfig(cfg); err == nil {
		t.Fatalf("expected error for invalid log level")
	}
}

func TestConfigSeedDecodesHex(t *testing.T) {
	cfg := DefaultConfig()
	seed := cfg.Seed()
	if len(seed) != 32 {
		t.Fatalf("seed length = %d, want 32", len(seed))
	}
}
