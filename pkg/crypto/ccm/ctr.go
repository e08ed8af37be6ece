// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"crypto/subtle"

	"github.com/pion/aesccm/internal/util"
	"golang.org/x/crypto/cryptobyte"
)

// counterBlock formats A_i: flags (L-1), the nonce, then i big-endian.
func counterBlock(dst *[BlockSize]byte, nonce *Nonce, i uint16) {
	b := cryptobyte.NewFixedBuilder(dst[:0])
	b.AddUint8(sizeFieldLen - 1)
	b.AddBytes(nonce[:])
	b.AddUint16(i)
}

// keystreamBlock sets dst to S_i = E(K, A_i). S_0 is reserved for the MIC.
// Only the counter index is traced.
func (c *CCM) keystreamBlock(dst *[BlockSize]byte, nonce *Nonce, i uint16) {
	counterBlock(dst, nonce, i)
	c.block.Encrypt(dst[:], dst[:])
	c.log.Tracef("ctr: A_%d", i)
}

// xorPayload XORs src with S_1..S_n into dst. Encryption and decryption are
// the same operation. dst must be at least as long as src.
func (c *CCM) xorPayload(nonce *Nonce, dst, src []byte) {
	var s [BlockSize]byte
	for i := uint16(1); len(src) > 0; i++ {
		c.keystreamBlock(&s, nonce, i)
		n := subtle.XORBytes(dst, src, s[:])
		dst, src = dst[n:], src[n:]
	}
	util.Wipe(s[:])
}

// xorTag XORs src with the leading bytes of S_0 into dst. It turns a raw
// CBC-MAC into the transmitted MIC and back.
func (c *CCM) xorTag(nonce *Nonce, dst, src []byte) {
	var s [BlockSize]byte
	c.keystreamBlock(&s, nonce, 0)
	subtle.XORBytes(dst, src, s[:])
	util.Wipe(s[:])
}
