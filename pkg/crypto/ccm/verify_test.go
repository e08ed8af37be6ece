// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamingMACMatchesComputeMAC(t *testing.T) {
	key := Key{0x0f, 0x1e, 0x2d, 0x3c, 0x4b, 0x5a, 0x69, 0x78, 0x87, 0x96, 0xa5, 0xb4, 0xc3, 0xd2, 0xe1, 0xf0}
	nonce := Nonce{9, 8, 7, 6, 5, 4, 3, 2, 1, 0, 1, 2, 3}

	c, err := New(&key)
	require.NoError(t, err)

	for _, adataLen := range []int{0, 1, 14, 40} {
		for _, payloadLen := range []int{0, 1, 16, 31, 1000} {
			t.Run(fmt.Sprintf("adata%d/payload%d", adataLen, payloadLen), func(t *testing.T) {
				adata := sequence(1, adataLen)
				payload := sequence(2, payloadLen)

				ciphertext := make([]byte, payloadLen)
				c.xorPayload(&nonce, ciphertext, payload)

				want := make([]byte, 16)
				c.computeMAC(want, &nonce, adata, payload, 16)

				got := make([]byte, 16)
				c.streamingMAC(got, &nonce, adata, ciphertext, 16)

				assert.Equal(t, want, got)
			})
		}
	}
}

func TestVerifyKicksWatchdogPerAdataBlock(t *testing.T) {
	var kicks int
	key := Key{1}
	nonce := Nonce{2}

	c, err := New(&key, WithWatchdog(KickerFunc(func() { kicks++ })))
	require.NoError(t, err)

	cases := []struct {
		adataLen  int
		wantKicks int
	}{
		{0, 0},
		{1, 1},
		{14, 1},  // the length field and adata fill one block exactly
		{15, 2},  // one byte spills into a padded second block
		{40, 3},  // 42 bytes
		{302, 19}, // 304 bytes
	}
	for _, tc := range cases {
		adata := sequence(0, tc.adataLen)
		payload := sequence(0, 50)

		kicks = 0
		out, err := c.Encrypt(&nonce, adata, payload, 8)
		require.NoError(t, err)
		plaintext, err := c.Decrypt(&nonce, adata, out[tc.adataLen:], 8)
		require.NoError(t, err)
		assert.Equal(t, payload, plaintext)
		assert.Zero(t, kicks, "encrypt and decrypt do not kick")

		assert.True(t, c.Verify(&nonce, adata, out[tc.adataLen:], 8))
		assert.Equal(t, tc.wantKicks, kicks, "adata length %d", tc.adataLen)
	}
}
