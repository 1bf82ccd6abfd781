package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// Config is the harness's own configuration. The device core itself takes
// none, since it is driven purely by Dispatch calls.
type Config struct {
	SeedHex      string
	AutoApprove  bool
	LogLevel     string
	TranscriptIn string
}

var allowedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// DefaultConfig returns the harness defaults: a fixed all-0x42 32-byte dev
// seed (matching the original source's host-test stub in crypto.c), and
// auto-approval so scripted transcripts don't block on a human.
func DefaultConfig() Config {
	return Config{
		SeedHex:     strings.Repeat("42", 32),
		AutoApprove: true,
		LogLevel:    "info",
	}
}

// ValidateConfig checks cfg for internal consistency, in the shape of
// node/config.go's ValidateConfig: a flat set of field checks returning the
// first violation found.
func ValidateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.SeedHex) == "" {
		return errors.New("seed_hex is required")
	}
	seed, err := hex.DecodeString(cfg.SeedHex)
	if err != nil {
		return fmt.Errorf("invalid seed_hex: %w", err)
	}
	if len(seed) == 0 {
		return errors.New("seed_hex decodes to empty seed")
	}
	logLevel := strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, ok := allowedLogLevels[logLevel]; !ok {
		return fmt.Errorf("invalid log_level %q", cfg.LogLevel)
	}
	return nil
}

// Seed decodes cfg's hex-encoded seed.
func (cfg Config) Seed() []byte {
	seed, _ := hex.DecodeString(cfg.SeedHex)
	return seed
}
