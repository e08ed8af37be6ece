// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"crypto/cipher"

	"github.com/pion/aesccm/internal/util"
)

type aead struct {
	ccm     *CCM
	tagSize int
}

// NewCCM returns block wrapped in CCM as a cipher.AEAD. Seal appends the
// ciphertext and the encrypted MIC to dst; unlike CCM.Encrypt it does not
// copy the additional data. Open authenticates the whole envelope before any
// plaintext is written to dst.
//
// nonceSize must be NonceSize, the size field of this CCM profile is fixed.
func NewCCM(block cipher.Block, tagSize, nonceSize int, opts ...Option) (cipher.AEAD, error) {
	if nonceSize != NonceSize {
		return nil, ErrInvalidNonceLength
	}
	if !ValidMICLength(tagSize) {
		return nil, ErrInvalidMICLength
	}
	c, err := NewWithBlock(block, opts...)
	if err != nil {
		return nil, err
	}

	return &aead{ccm: c, tagSize: tagSize}, nil
}

func (a *aead) NonceSize() int {
	return NonceSize
}

func (a *aead) Overhead() int {
	return a.tagSize
}

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != NonceSize {
		panic("ccm: incorrect nonce length given to CCM")
	}
	if err := checkLengths(len(additionalData), len(plaintext), a.tagSize); err != nil {
		panic("ccm: " + err.Error())
	}
	n := (*Nonce)(nonce)

	ret, out := util.SliceForAppend(dst, len(plaintext)+a.tagSize)
	if util.InexactOverlap(out, plaintext) {
		panic("ccm: invalid buffer overlap")
	}

	var tag [BlockSize]byte
	a.ccm.computeMAC(tag[:a.tagSize], n, additionalData, plaintext, a.tagSize)
	a.ccm.xorPayload(n, out, plaintext)
	a.ccm.xorTag(n, out[len(plaintext):], tag[:a.tagSize])
	util.Wipe(tag[:])

	return ret
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, ErrInvalidNonceLength
	}
	payloadLen, err := envelopeLengths(len(additionalData), len(ciphertext), a.tagSize)
	if err != nil {
		return nil, err
	}
	n := (*Nonce)(nonce)

	if !a.ccm.Verify(n, additionalData, ciphertext, a.tagSize) {
		return nil, ErrAuthFailed
	}

	ret, out := util.SliceForAppend(dst, payloadLen)
	if util.InexactOverlap(out, ciphertext[:payloadLen]) {
		panic("ccm: invalid buffer overlap")
	}
	a.ccm.xorPayload(n, out, ciphertext[:payloadLen])

	return ret, nil
}
