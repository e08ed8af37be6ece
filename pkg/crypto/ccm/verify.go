// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"crypto/subtle"

	"github.com/pion/aesccm/internal/util"
)

// streamingMAC computes the same value as computeMAC but from ciphertext.
// Each ciphertext block is CTR-decrypted into a single stack block, chained
// into the MAC and discarded, so no plaintext buffer of payload size exists.
// The watchdog is kicked once per associated data block.
func (c *CCM) streamingMAC(tag []byte, nonce *Nonce, adata, ciphertext []byte, micLen int) {
	m := newCBCMAC(c.block, c.log)
	defer m.wipe()

	m.start(nonce, adata, len(ciphertext), micLen, c.watchdog)

	var p [BlockSize]byte
	for i := uint16(1); len(ciphertext) > 0; i++ {
		c.keystreamBlock(&p, nonce, i)
		n := subtle.XORBytes(p[:], p[:], ciphertext)
		clear(p[n:])
		m.appendBlock(&p)
		ciphertext = ciphertext[n:]
	}
	util.Wipe(p[:])

	m.sum(tag)
}
