// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorUnwrap(t *testing.T) {
	errExample := errors.New("an example error") //nolint:err113

	cases := []struct {
		err  error
		str  string
		kind any
	}{
		{&ArgumentError{errExample}, "ccm argument: an example error", new(*ArgumentError)},
		{&AuthenticationError{errExample}, "ccm authentication: an example error", new(*AuthenticationError)},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%T", c.err), func(t *testing.T) {
			assert.Equal(t, c.str, c.err.Error())
			assert.Same(t, errExample, errors.Unwrap(c.err))
			assert.ErrorIs(t, fmt.Errorf("wrapped: %w", c.err), errExample)
			assert.ErrorAs(t, c.err, c.kind)
		})
	}
}

func TestSentinelKinds(t *testing.T) {
	for _, err := range []error{
		ErrInvalidMICLength, ErrInvalidNonceLength, ErrInvalidBlockSize,
		ErrPayloadTooLong, ErrAdataTooLong, ErrCiphertextTooShort, ErrNilOption,
		ErrNilKey, ErrNilNonce,
	} {
		var argErr *ArgumentError
		assert.ErrorAs(t, err, &argErr, err.Error())
	}

	var authErr *AuthenticationError
	assert.ErrorAs(t, ErrAuthFailed, &authErr)
}
