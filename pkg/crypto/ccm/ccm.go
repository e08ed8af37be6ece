// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package ccm implements Counter with CBC-MAC (RFC 3610) over a 128-bit block
// cipher, fixed to a 13 byte nonce and a two byte size field. This is the
// profile used to protect IEEE 802.15.4 and 6LoWPAN frames.
//
// The transmitted envelope is E_CTR(payload) followed by E_CTR(MIC). The MIC
// length is not carried on the wire and must be agreed out of band. A nonce
// must never be reused under the same key; this package does not detect it.
package ccm

import (
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	"github.com/pion/aesccm/internal/util"
	"github.com/pion/aesccm/pkg/crypto/blockcipher"
	"github.com/pion/logging"
)

const (
	// BlockSize is the block size of the underlying cipher.
	BlockSize = 16
	// NonceSize is the only supported nonce length.
	NonceSize = 13
	// MaxPayloadLength is the largest payload the two byte size field of B0
	// can describe.
	MaxPayloadLength = 1<<(8*sizeFieldLen) - 1
	// MaxAdataLength is the largest associated data length the extended
	// length field can describe.
	MaxAdataLength = 1<<32 - 1

	sizeFieldLen = 15 - NonceSize
)

// Key is an AES-128 key.
type Key [blockcipher.KeySize]byte

// Nonce uniquely identifies one message under one key.
type Nonce [NonceSize]byte

// ValidMICLength reports whether n is a MIC length CCM can encode in B0:
// an even number between 4 and 16.
func ValidMICLength(n int) bool {
	return n >= 4 && n <= 16 && n%2 == 0
}

// CCM seals and opens CCM envelopes under one key. It only holds immutable
// configuration; every call keeps its MAC and keystream state to itself, so
// a CCM may be shared between goroutines.
type CCM struct {
	block    cipher.Block
	watchdog Kicker
	log      logging.LeveledLogger
}

// New creates a CCM for key, using the block cipher chosen with
// WithBlockCipher (crypto/aes by default).
func New(key *Key, opts ...Option) (*CCM, error) {
	if key == nil {
		return nil, ErrNilKey
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	block, err := cfg.blockCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("ccm: create block cipher: %w", err)
	}

	return newCCM(block, cfg)
}

// NewWithBlock creates a CCM around an already keyed block cipher.
func NewWithBlock(block cipher.Block, opts ...Option) (*CCM, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return newCCM(block, cfg)
}

func newCCM(block cipher.Block, cfg *config) (*CCM, error) {
	if block.BlockSize() != BlockSize {
		return nil, ErrInvalidBlockSize
	}

	return &CCM{
		block:    block,
		watchdog: cfg.watchdog,
		log:      cfg.loggerFactory.NewLogger("ccm"),
	}, nil
}

// Encrypt authenticates adata and payload and encrypts payload. The result
// is adata, copied verbatim, followed by the ciphertext and the encrypted
// MIC, len(adata)+len(payload)+micLen bytes in total. Protocols normally
// transmit adata out of band and only the trailing envelope.
func (c *CCM) Encrypt(nonce *Nonce, adata, payload []byte, micLen int) ([]byte, error) {
	err := checkLengths(len(adata), len(payload), micLen)
	if err == nil && nonce == nil {
		err = ErrNilNonce
	}
	if err != nil {
		c.log.Debugf("encrypt rejected: %v", err)

		return nil, err
	}
	c.log.Tracef("encrypt: adata=%d payload=%d mic=%d", len(adata), len(payload), micLen)

	out := make([]byte, len(adata)+len(payload)+micLen)
	copy(out, adata)

	var tag [BlockSize]byte
	defer util.Wipe(tag[:])
	c.computeMAC(tag[:micLen], nonce, adata, payload, micLen)

	ciphertext := out[len(adata) : len(adata)+len(payload)]
	c.xorPayload(nonce, ciphertext, payload)
	c.xorTag(nonce, out[len(adata)+len(payload):], tag[:micLen])

	return out, nil
}

// Decrypt opens ciphermic, the ciphertext followed by the encrypted MIC, and
// returns the plaintext. On any failure no plaintext is returned; length
// errors are *ArgumentError and a MIC mismatch is ErrAuthFailed.
func (c *CCM) Decrypt(nonce *Nonce, adata, ciphermic []byte, micLen int) ([]byte, error) {
	payloadLen, err := envelopeLengths(len(adata), len(ciphermic), micLen)
	if err == nil && nonce == nil {
		err = ErrNilNonce
	}
	if err != nil {
		c.log.Debugf("decrypt rejected: %v", err)

		return nil, err
	}
	c.log.Tracef("decrypt: adata=%d payload=%d mic=%d", len(adata), payloadLen, micLen)

	var expected, computed [BlockSize]byte
	defer util.Wipe(expected[:], computed[:])
	c.xorTag(nonce, expected[:micLen], ciphermic[payloadLen:])

	plaintext := make([]byte, payloadLen)
	c.xorPayload(nonce, plaintext, ciphermic[:payloadLen])
	c.computeMAC(computed[:micLen], nonce, adata, plaintext, micLen)

	if subtle.ConstantTimeCompare(expected[:micLen], computed[:micLen]) != 1 {
		util.Wipe(plaintext)
		c.log.Debugf("decrypt: %v", ErrAuthFailed)

		return nil, ErrAuthFailed
	}

	return plaintext, nil
}

// Verify reports whether ciphermic is an authentic envelope for adata under
// nonce, without materializing the plaintext. Every failure, including
// invalid lengths, yields false.
func (c *CCM) Verify(nonce *Nonce, adata, ciphermic []byte, micLen int) bool {
	payloadLen, err := envelopeLengths(len(adata), len(ciphermic), micLen)
	if err == nil && nonce == nil {
		err = ErrNilNonce
	}
	if err != nil {
		c.log.Debugf("verify rejected: %v", err)

		return false
	}
	c.log.Tracef("verify: adata=%d payload=%d mic=%d", len(adata), payloadLen, micLen)

	var expected, computed [BlockSize]byte
	defer util.Wipe(expected[:], computed[:])
	c.xorTag(nonce, expected[:micLen], ciphermic[payloadLen:])
	c.streamingMAC(computed[:micLen], nonce, adata, ciphermic[:payloadLen], micLen)

	if subtle.ConstantTimeCompare(expected[:micLen], computed[:micLen]) != 1 {
		c.log.Debugf("verify: %v", ErrAuthFailed)

		return false
	}

	return true
}

func (c *CCM) reset() {
	blockcipher.Reset(c.block)
}

func checkLengths(adataLen, payloadLen, micLen int) error {
	switch {
	case !ValidMICLength(micLen):
		return ErrInvalidMICLength
	case payloadLen > MaxPayloadLength:
		return ErrPayloadTooLong
	case uint64(adataLen) > MaxAdataLength: //nolint:gosec // G115, lengths are never negative
		return ErrAdataTooLong
	}

	return nil
}

// envelopeLengths validates a ciphertext-plus-MIC envelope and returns the
// payload length.
func envelopeLengths(adataLen, ciphermicLen, micLen int) (int, error) {
	if !ValidMICLength(micLen) {
		return 0, ErrInvalidMICLength
	}
	if ciphermicLen < micLen {
		return 0, ErrCiphertextTooShort
	}
	payloadLen := ciphermicLen - micLen

	return payloadLen, checkLengths(adataLen, payloadLen, micLen)
}

// Encrypt is Encrypt on a CCM built from key with the default AES cipher.
// The key schedule is rebuilt on every call; callers sealing many frames
// under one key should keep a CCM instead.
func Encrypt(key *Key, nonce *Nonce, adata, payload []byte, micLen int) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	defer c.reset()

	return c.Encrypt(nonce, adata, payload, micLen)
}

// Decrypt is Decrypt on a CCM built from key with the default AES cipher.
func Decrypt(key *Key, nonce *Nonce, adata, ciphermic []byte, micLen int) ([]byte, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	defer c.reset()

	return c.Decrypt(nonce, adata, ciphermic, micLen)
}

// Verify is Verify on a CCM built from key with the default AES cipher.
func Verify(key *Key, nonce *Nonce, adata, ciphermic []byte, micLen int) bool {
	c, err := New(key)
	if err != nil {
		return false
	}
	defer c.reset()

	return c.Verify(nonce, adata, ciphermic, micLen)
}
