// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"crypto/cipher"
	"crypto/subtle"

	"github.com/pion/aesccm/internal/util"
	"github.com/pion/logging"
	"golang.org/x/crypto/cryptobyte"
)

const (
	flagAdata = 1 << 6

	// Associated data of this length or more uses the 0xFF 0xFE form.
	extendedAdataThreshold = 1 << 16
	maxAdataFieldLen       = 6
)

// cbcMAC is the running CBC-MAC of one operation. It is created per call and
// wiped before the call returns.
type cbcMAC struct {
	block  cipher.Block
	log    logging.LeveledLogger
	x      [BlockSize]byte // last cipher block
	buf    [BlockSize]byte
	n      int // bytes pending in buf
	blocks int
}

func newCBCMAC(block cipher.Block, log logging.LeveledLogger) *cbcMAC {
	return &cbcMAC{block: block, log: log}
}

// appendBlock chains one block: x = E(K, x XOR b).
func (m *cbcMAC) appendBlock(b *[BlockSize]byte) {
	subtle.XORBytes(m.x[:], m.x[:], b[:])
	m.block.Encrypt(m.x[:], m.x[:])
	m.log.Tracef("cbc-mac: B_%d", m.blocks)
	m.blocks++
}

// write feeds p through the MAC, appending each block as it fills and
// kicking k after every append.
func (m *cbcMAC) write(p []byte, k Kicker) {
	for len(p) > 0 {
		n := copy(m.buf[m.n:], p)
		m.n += n
		p = p[n:]
		if m.n == BlockSize {
			m.appendBlock(&m.buf)
			m.n = 0
			k.Kick()
		}
	}
}

// pad zero-fills and appends a pending partial block.
func (m *cbcMAC) pad(k Kicker) {
	if m.n == 0 {
		return
	}
	clear(m.buf[m.n:])
	m.appendBlock(&m.buf)
	m.n = 0
	k.Kick()
}

// start appends B0 and the length-prefixed, zero-padded associated data.
func (m *cbcMAC) start(nonce *Nonce, adata []byte, payloadLen, micLen int, k Kicker) {
	var b0 [BlockSize]byte
	formatB0(&b0, nonce, len(adata), payloadLen, micLen)
	m.appendBlock(&b0)

	if len(adata) == 0 {
		return
	}

	var field [maxAdataFieldLen]byte
	m.write(adataLengthField(&field, len(adata)), k)
	m.write(adata, k)
	m.pad(k)
}

// sum copies the leading len(dst) bytes of the accumulator into dst.
func (m *cbcMAC) sum(dst []byte) {
	copy(dst, m.x[:])
	m.log.Tracef("cbc-mac: %d blocks", m.blocks)
}

func (m *cbcMAC) wipe() {
	util.Wipe(m.x[:], m.buf[:])
	m.n = 0
}

// formatB0 builds the first CBC-MAC block. The size field is two bytes, so
// payloadLen must not exceed MaxPayloadLength.
func formatB0(dst *[BlockSize]byte, nonce *Nonce, adataLen, payloadLen, micLen int) {
	var flags byte
	if adataLen > 0 {
		flags |= flagAdata
	}
	flags |= byte((micLen-2)/2) << 3 //nolint:gosec // G115, micLen is validated
	flags |= sizeFieldLen - 1

	b := cryptobyte.NewFixedBuilder(dst[:0])
	b.AddUint8(flags)
	b.AddBytes(nonce[:])
	b.AddUint16(uint16(payloadLen)) //nolint:gosec // G115, payloadLen is validated
}

// adataLengthField encodes l(a) into dst and returns the used prefix:
// two bytes below 2^16, otherwise 0xFF 0xFE and four bytes.
func adataLengthField(dst *[maxAdataFieldLen]byte, n int) []byte {
	b := cryptobyte.NewFixedBuilder(dst[:0])
	if n < extendedAdataThreshold {
		b.AddUint16(uint16(n)) //nolint:gosec // G115
	} else {
		b.AddUint8(0xff)
		b.AddUint8(0xfe)
		b.AddUint32(uint32(n)) //nolint:gosec // G115, n is validated
	}

	return b.BytesOrPanic()
}

// computeMAC runs the CBC-MAC over B0, adata and plaintext and writes the
// leading len(tag) bytes into tag.
func (c *CCM) computeMAC(tag []byte, nonce *Nonce, adata, payload []byte, micLen int) {
	m := newCBCMAC(c.block, c.log)
	defer m.wipe()

	m.start(nonce, adata, len(payload), micLen, nopKicker{})
	m.write(payload, nopKicker{})
	m.pad(nopKicker{})
	m.sum(tag)
}
