// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Package config loads the ccmtool profile.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pion/aesccm/pkg/crypto/blockcipher"
	"github.com/pion/aesccm/pkg/crypto/ccm"
	"github.com/pion/logging"
)

const (
	// DefaultMICLength is used when the profile does not set MICLength.
	DefaultMICLength = 8
	// DefaultLogLevel only reports errors.
	DefaultLogLevel = "ERROR"
)

var logLevels = map[string]logging.LogLevel{ //nolint:gochecknoglobals
	"DISABLED": logging.LogLevelDisabled,
	"ERROR":    logging.LogLevelError,
	"WARN":     logging.LogLevelWarn,
	"INFO":     logging.LogLevelInfo,
	"DEBUG":    logging.LogLevelDebug,
	"TRACE":    logging.LogLevelTrace,
}

// Logging is the logging configuration.
type Logging struct {
	// Level is one of DISABLED, ERROR, WARN, INFO, DEBUG or TRACE.
	Level string
}

// Validate normalizes and validates the logging configuration.
func (l *Logging) Validate() error {
	lvl := strings.ToUpper(strings.TrimSpace(l.Level))
	if lvl == "" {
		lvl = DefaultLogLevel
	}
	if _, ok := logLevels[lvl]; !ok {
		return fmt.Errorf("config: Logging: Level '%v' is invalid", l.Level) //nolint:err113
	}
	l.Level = lvl

	return nil
}

// Config is the ccmtool profile.
type Config struct {
	// MICLength is the number of MIC bytes appended to each envelope.
	MICLength int

	// Cipher names the block cipher, see blockcipher.ByName.
	Cipher string

	// Logging is the logging configuration.
	Logging *Logging
}

// Default returns the profile used when no file is given.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic(err)
	}

	return cfg
}

// FixupAndValidate applies defaults and validates the profile.
func (c *Config) FixupAndValidate() error {
	if c.MICLength == 0 {
		c.MICLength = DefaultMICLength
	}
	if !ccm.ValidMICLength(c.MICLength) {
		return fmt.Errorf("config: MICLength %d: %w", c.MICLength, ccm.ErrInvalidMICLength)
	}
	c.Cipher = strings.ToLower(strings.TrimSpace(c.Cipher))
	if c.Cipher == "" {
		c.Cipher = blockcipher.NameAES
	}
	if _, err := blockcipher.ByName(c.Cipher); err != nil {
		return fmt.Errorf("config: Cipher '%v': %w", c.Cipher, err)
	}
	if c.Logging == nil {
		c.Logging = &Logging{Level: DefaultLogLevel}
	}

	return c.Logging.Validate()
}

// BlockCipher returns the factory selected by Cipher.
func (c *Config) BlockCipher() (blockcipher.Factory, error) {
	return blockcipher.ByName(c.Cipher)
}

// LoggerFactory returns a logger factory writing to w at the configured level.
func (c *Config) LoggerFactory(w io.Writer) logging.LoggerFactory {
	lvl, ok := logLevels[c.Logging.Level]
	if !ok {
		lvl = logging.LogLevelError
	}

	return &logging.DefaultLoggerFactory{
		Writer:          w,
		DefaultLogLevel: lvl,
		ScopeLevels:     map[string]logging.LogLevel{},
	}
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown keys %v", undecoded) //nolint:err113
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	if f == "" {
		return nil, errors.New("config: no file given") //nolint:err113
	}
	b, err := os.ReadFile(f) //nolint:gosec // G304, path is operator input
	if err != nil {
		return nil, err
	}

	return Load(b)
}
