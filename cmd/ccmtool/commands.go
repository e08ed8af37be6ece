// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/pion/aesccm/internal/config"
	"github.com/pion/aesccm/pkg/crypto/ccm"
	"github.com/spf13/cobra"
)

var (
	errVerifyFailed = errors.New("envelope did not verify")       //nolint:err113
	errKeyLength    = errors.New("key must be 16 bytes of hex")   //nolint:err113
	errNonceLength  = errors.New("nonce must be 13 bytes of hex") //nolint:err113
)

type flags struct {
	configFile string
	key        string
	nonce      string
	adata      string
	micLen     int
	cipher     string
	text       bool
}

// operation is everything a subcommand needs after flag parsing.
type operation struct {
	ccm    *ccm.CCM
	nonce  ccm.Nonce
	adata  []byte
	micLen int
	text   bool
}

func newRootCommand() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "ccmtool",
		Short: "AES-CCM envelopes with a 13 byte nonce",
		Long: `ccmtool seals, opens and verifies AES-CCM envelopes with a 13 byte nonce and
a two byte size field. Keys, nonces, associated data and envelopes are hex.
An envelope is the ciphertext followed by the encrypted MIC; the associated
data is passed separately with --adata.`,
		Example: `  ccmtool encrypt --key 000102030405060708090a0b0c0d0e0f \
    --nonce 101112131415161718191a1b1c --adata 0001 --text hello
  ccmtool verify --key ... --nonce ... --adata 0001 --mic-len 8 ENVELOPE`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "TOML profile")
	pf.StringVarP(&f.key, "key", "k", "", "128-bit key (hex)")
	pf.StringVarP(&f.nonce, "nonce", "n", "", "13 byte nonce (hex)")
	pf.StringVarP(&f.adata, "adata", "a", "", "associated data (hex)")
	pf.IntVarP(&f.micLen, "mic-len", "m", config.DefaultMICLength, "MIC length in bytes (4, 6, ... 16)")
	pf.StringVar(&f.cipher, "cipher", "", "block cipher: aes or bitsliced")
	pf.BoolVarP(&f.text, "text", "t", false, "payload and plaintext are text, not hex")
	_ = root.MarkPersistentFlagRequired("key")
	_ = root.MarkPersistentFlagRequired("nonce")

	root.AddCommand(
		&cobra.Command{
			Use:   "encrypt PAYLOAD",
			Short: "Seal a payload and print the envelope",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				op, err := f.resolve(cmd)
				if err != nil {
					return err
				}

				return op.encrypt(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "decrypt ENVELOPE",
			Short: "Open an envelope and print the plaintext",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				op, err := f.resolve(cmd)
				if err != nil {
					return err
				}

				return op.decrypt(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "verify ENVELOPE",
			Short: "Authenticate an envelope without decrypting it",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				op, err := f.resolve(cmd)
				if err != nil {
					return err
				}

				return op.verify(cmd, args[0])
			},
		},
	)

	return root
}

// resolve turns the profile and flags into a keyed CCM. Flags that were
// set explicitly override the profile.
func (f *flags) resolve(cmd *cobra.Command) (*operation, error) {
	cfg := config.Default()
	if f.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(f.configFile); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}
	if cmd.Flags().Changed("mic-len") {
		cfg.MICLength = f.micLen
	}
	if cmd.Flags().Changed("cipher") {
		cfg.Cipher = f.cipher
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	factory, err := cfg.BlockCipher()
	if err != nil {
		return nil, err
	}

	var key ccm.Key
	if err := decodeFixed(key[:], f.key, errKeyLength); err != nil {
		return nil, err
	}
	op := &operation{micLen: cfg.MICLength, text: f.text}
	if err := decodeFixed(op.nonce[:], f.nonce, errNonceLength); err != nil {
		return nil, err
	}
	if op.adata, err = decodeHex(f.adata); err != nil {
		return nil, fmt.Errorf("adata: %w", err)
	}

	op.ccm, err = ccm.New(&key,
		ccm.WithBlockCipher(factory),
		ccm.WithLoggerFactory(cfg.LoggerFactory(cmd.ErrOrStderr())),
	)
	clear(key[:])
	if err != nil {
		return nil, err
	}

	return op, nil
}

func (op *operation) encrypt(cmd *cobra.Command, arg string) error {
	payload := []byte(arg)
	if !op.text {
		var err error
		if payload, err = decodeHex(arg); err != nil {
			return fmt.Errorf("payload: %w", err)
		}
	}

	out, err := op.ccm.Encrypt(&op.nonce, op.adata, payload, op.micLen)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(out[len(op.adata):]))

	return err
}

func (op *operation) decrypt(cmd *cobra.Command, arg string) error {
	envelope, err := decodeHex(arg)
	if err != nil {
		return fmt.Errorf("envelope: %w", err)
	}

	plaintext, err := op.ccm.Decrypt(&op.nonce, op.adata, envelope, op.micLen)
	if err != nil {
		return err
	}
	result := hex.EncodeToString(plaintext)
	if op.text {
		result = string(plaintext)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result)

	return err
}

func (op *operation) verify(cmd *cobra.Command, arg string) error {
	envelope, err := decodeHex(arg)
	if err != nil {
		return fmt.Errorf("envelope: %w", err)
	}

	if !op.ccm.Verify(&op.nonce, op.adata, envelope, op.micLen) {
		fmt.Fprintln(cmd.OutOrStdout(), "fail") //nolint:errcheck

		return errVerifyFailed
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")

	return err
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	return hex.DecodeString(s)
}

func decodeFixed(dst []byte, s string, errLength error) error {
	b, err := decodeHex(s)
	if err != nil {
		return fmt.Errorf("%w: %w", errLength, err)
	}
	if len(b) != len(dst) {
		return errLength
	}
	copy(dst, b)
	clear(b)

	return nil
}
