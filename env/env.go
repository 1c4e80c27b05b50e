//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements the global environment for the garbling
// engine.
package env

import (
	"crypto/rand"
	"io"
)

// DefaultK is the default security parameter in bits. It matches the
// wire label width.
const DefaultK = 128

// Config defines the global configuration for one protocol session.
// It configures all garbling modules and must not be modified after
// being passed to any of them. It is safe for concurrent use by
// multiple modules as they do not modify it.
type Config struct {
	// K is the security parameter in bits. The zero value selects
	// DefaultK.
	K int

	// Rand overrides the source of entropy.
	Rand io.Reader
}

// KeyBits returns the security parameter in bits.
func (config *Config) KeyBits() int {
	if config.K != 0 {
		return config.K
	}
	return DefaultK
}

// KeyBytes returns the security parameter in bytes.
func (config *Config) KeyBytes() int {
	return config.KeyBits() / 8
}

// GetRandom returns the source of entropy for garbling and other
// cryptography operations.
func (config *Config) GetRandom() io.Reader {
	if config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}
