//go:build bench

// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/pion/aesccm/pkg/crypto/blockcipher"
)

var benchPayloadSizes = []int{16, 64, 127, 256, 1024, 4096, MaxPayloadLength}

func newBenchCCM(b *testing.B, factory blockcipher.Factory) *CCM {
	b.Helper()

	h := sha256.Sum256([]byte("benchmark-key"))
	var key Key
	copy(key[:], h[:])

	c, err := New(&key, WithBlockCipher(factory))
	if err != nil {
		b.Fatal(err)
	}

	return c
}

func benchmarkEncrypt(b *testing.B, factory blockcipher.Factory) {
	b.Helper()

	c := newBenchCCM(b, factory)
	nonce := Nonce{1}
	adata := make([]byte, 13)

	for _, size := range benchPayloadSizes {
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			payload := make([]byte, size)

			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := c.Encrypt(&nonce, adata, payload, 8); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func benchmarkOpen(b *testing.B, factory blockcipher.Factory, verifyOnly bool) {
	b.Helper()

	c := newBenchCCM(b, factory)
	nonce := Nonce{1}
	adata := make([]byte, 13)

	for _, size := range benchPayloadSizes {
		b.Run(fmt.Sprintf("%dB", size), func(b *testing.B) {
			out, err := c.Encrypt(&nonce, adata, make([]byte, size), 8)
			if err != nil {
				b.Fatal(err)
			}
			ciphermic := out[len(adata):]

			b.ReportAllocs()
			b.SetBytes(int64(size))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if verifyOnly {
					if !c.Verify(&nonce, adata, ciphermic, 8) {
						b.Fatal("verify failed")
					}

					continue
				}
				if _, err := c.Decrypt(&nonce, adata, ciphermic, 8); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEncrypt(b *testing.B) {
	benchmarkEncrypt(b, blockcipher.AES)
}

func BenchmarkDecrypt(b *testing.B) {
	benchmarkOpen(b, blockcipher.AES, false)
}

func BenchmarkVerify(b *testing.B) {
	benchmarkOpen(b, blockcipher.AES, true)
}

func BenchmarkEncryptBitsliced(b *testing.B) {
	benchmarkEncrypt(b, blockcipher.Bitsliced)
}

func BenchmarkVerifyBitsliced(b *testing.B) {
	benchmarkOpen(b, blockcipher.Bitsliced, true)
}
