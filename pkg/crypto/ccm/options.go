// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package ccm

import (
	"sync"

	"github.com/pion/aesccm/pkg/crypto/blockcipher"
	"github.com/pion/logging"
)

// Option configures a CCM.
type Option interface {
	apply(*config) error
}

type optionFunc func(*config) error

func (f optionFunc) apply(c *config) error {
	return f(c)
}

// defaultLoggerFactory reads the PION_LOG_* environment once for every CCM
// built without WithLoggerFactory.
var defaultLoggerFactory = sync.OnceValue(func() logging.LoggerFactory { //nolint:gochecknoglobals
	return logging.NewDefaultLoggerFactory()
})

type config struct {
	loggerFactory logging.LoggerFactory
	watchdog      Kicker
	blockCipher   blockcipher.Factory
}

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		watchdog:    nopKicker{},
		blockCipher: blockcipher.AES,
	}
	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.loggerFactory == nil {
		cfg.loggerFactory = defaultLoggerFactory()
	}

	return cfg, nil
}

// WithLoggerFactory sets the logger factory for creating loggers.
func WithLoggerFactory(factory logging.LoggerFactory) Option {
	return optionFunc(func(c *config) error {
		if factory == nil {
			return ErrNilOption
		}
		c.loggerFactory = factory

		return nil
	})
}

// WithWatchdog sets the collaborator kicked during long verify loops.
func WithWatchdog(k Kicker) Option {
	return optionFunc(func(c *config) error {
		if k == nil {
			return ErrNilOption
		}
		c.watchdog = k

		return nil
	})
}

// WithBlockCipher selects the block cipher built from the key by New.
// It has no effect on NewWithBlock.
func WithBlockCipher(factory blockcipher.Factory) Option {
	return optionFunc(func(c *config) error {
		if factory == nil {
			return ErrNilOption
		}
		c.blockCipher = factory

		return nil
	})
}
