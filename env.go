// Package sdk is the contract-side boundary to the host.
//
// Every operation is a method on Env, the handle for the current execution
// environment. Each method is exactly one synchronous host round trip with a
// single pass/fail outcome; nothing is retried, batched or cached.
package sdk

import (
	"log/slog"

	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
	"github.com/reglet-dev/ewasm-sdk/go/infrastructure/wasm"
)

// Env is the current execution environment of a contract.
type Env struct {
	host   ports.Host
	logger *slog.Logger
}

// Option configures an Env.
type Option func(*envConfig)

type envConfig struct {
	logger *slog.Logger
}

func defaultEnvConfig() envConfig {
	return envConfig{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithLogger sets the logger used for Debug-level traces of host failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *envConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New binds an Env to host.
func New(host ports.Host, opts ...Option) *Env {
	cfg := defaultEnvConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Env{host: host, logger: cfg.logger}
}

// Default binds an Env to the host imports of the running wasm instance.
// On native builds the returned Env panics on first use.
func Default(opts ...Option) *Env {
	return New(wasm.NewHostAdapter(), opts...)
}

// Host returns the underlying host.
func (e *Env) Host() ports.Host {
	return e.host
}

// Logger returns the Env logger.
func (e *Env) Logger() *slog.Logger {
	return e.logger
}
