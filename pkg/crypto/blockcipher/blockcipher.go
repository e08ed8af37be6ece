// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package blockcipher provides the single-block encryption primitives that
// CCM is built on. CCM only ever calls the forward direction of the cipher.
package blockcipher

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/yawning/bsaes.git"
)

// KeySize is the length of an AES-128 key in bytes.
const KeySize = 16

// Names accepted by ByName.
const (
	NameAES       = "aes"
	NameBitsliced = "bitsliced"
)

var (
	// ErrInvalidKeySize is returned when a key is not 128 bits long.
	ErrInvalidKeySize = errors.New("blockcipher: key must be 16 bytes") //nolint:err113
	// ErrUnknownCipher is returned by ByName for unsupported names.
	ErrUnknownCipher = errors.New("blockcipher: unknown cipher") //nolint:err113
)

// Factory creates a block cipher keyed with a 128-bit key.
type Factory func(key []byte) (cipher.Block, error)

// AES is backed by crypto/aes. It is constant time on platforms with AES
// instructions.
func AES(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	return aes.NewCipher(key)
}

// Bitsliced is a constant time software AES for targets without AES
// instructions, where the table based fallback leaks key bits via cache
// timing.
func Bitsliced(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeySize
	}

	return bsaes.NewCipher(key)
}

// ByName returns the factory registered under name. The empty name selects
// AES.
func ByName(name string) (Factory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameAES:
		return AES, nil
	case NameBitsliced, "bsaes":
		return Bitsliced, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCipher, name)
	}
}

type resetable interface {
	Reset()
}

// Reset clears the key schedule held by block when the implementation
// supports it. crypto/aes does not, bsaes does.
func Reset(block cipher.Block) {
	if r, ok := block.(resetable); ok {
		r.Reset()
	}
}
