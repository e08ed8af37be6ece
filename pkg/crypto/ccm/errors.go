// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"errors"
	"fmt"
)

// Typed errors.
var (
	//nolint:err113
	ErrInvalidMICLength = &ArgumentError{Err: errors.New("MIC length must be one of 4, 6, 8, 10, 12, 14 or 16")}
	//nolint:err113
	ErrInvalidNonceLength = &ArgumentError{Err: errors.New("nonce must be 13 bytes")}
	//nolint:err113
	ErrInvalidBlockSize = &ArgumentError{Err: errors.New("block cipher must have a 16 byte block")}
	//nolint:err113
	ErrPayloadTooLong = &ArgumentError{Err: errors.New("payload longer than 65535 bytes")}
	//nolint:err113
	ErrAdataTooLong = &ArgumentError{Err: errors.New("associated data longer than 2^32-1 bytes")}
	//nolint:err113
	ErrCiphertextTooShort = &ArgumentError{Err: errors.New("ciphertext shorter than the MIC")}
	//nolint:err113
	ErrNilKey = &ArgumentError{Err: errors.New("key must not be nil")}
	//nolint:err113
	ErrNilNonce = &ArgumentError{Err: errors.New("nonce must not be nil")}
	//nolint:err113
	ErrNilOption = &ArgumentError{Err: errors.New("option value must not be nil")}

	//nolint:err113
	ErrAuthFailed = &AuthenticationError{Err: errors.New("message authentication failed")}
)

// ArgumentError indicates lengths or parameters that the CCM envelope can
// not encode. Nothing was encrypted or decrypted.
type ArgumentError struct {
	Err error
}

// AuthenticationError indicates that the recomputed MIC did not match the
// one carried by the envelope. Corrupted and forged frames produce the same
// error.
type AuthenticationError struct {
	Err error
}

func (e *ArgumentError) Error() string { return fmt.Sprintf("ccm argument: %v", e.Err) }

// Unwrap returns the underlying error.
func (e *ArgumentError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Error() string { return fmt.Sprintf("ccm authentication: %v", e.Err) }

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error { return e.Err }
