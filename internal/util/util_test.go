// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceForAppend(t *testing.T) {
	cases := map[string]struct {
		in       []byte
		n        int
		wantHead int
		inPlace  bool
	}{
		"NilInput": {
			in:       nil,
			n:        4,
			wantHead: 4,
		},
		"EnoughCapacity": {
			in:       make([]byte, 2, 16),
			n:        8,
			wantHead: 10,
			inPlace:  true,
		},
		"Grows": {
			in:       []byte{1, 2, 3},
			n:        16,
			wantHead: 19,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			head, tail := SliceForAppend(tc.in, tc.n)
			assert.Len(t, head, tc.wantHead)
			assert.Len(t, tail, tc.n)
			assert.True(t, bytes.Equal(tc.in, head[:len(tc.in)]))
			if tc.inPlace {
				assert.Same(t, &tc.in[:1][0], &head[0])
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	buf := make([]byte, 32)

	assert.False(t, AnyOverlap(buf[:8], buf[8:16]))
	assert.True(t, AnyOverlap(buf[:9], buf[8:16]))
	assert.False(t, AnyOverlap(nil, buf))

	assert.False(t, InexactOverlap(buf[:16], buf[:16]), "in place use is allowed")
	assert.True(t, InexactOverlap(buf[1:17], buf[:16]))
	assert.False(t, InexactOverlap(buf[16:], buf[:16]))
}

func TestWipe(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{0xff}

	Wipe(a, b, nil)

	assert.Equal(t, []byte{0, 0, 0}, a)
	assert.Equal(t, []byte{0}, b)
}
