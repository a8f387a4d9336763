package host

import (
	"log/slog"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*executorConfig)

type executorConfig struct {
	world     *entities.WorldConfig
	contracts map[string]hostfuncs.Contract
	logger    *slog.Logger
	trace     bool
}

func defaultExecutorConfig() executorConfig {
	return executorConfig{
		world:     &entities.WorldConfig{},
		contracts: make(map[string]hostfuncs.Contract),
		logger:    slog.Default(),
	}
}

// WithConfig sets the initial world, capabilities and limits.
func WithConfig(cfg *entities.WorldConfig) Option {
	return func(c *executorConfig) {
		if cfg != nil {
			c.world = cfg
		}
	}
}

// WithNativeContracts registers Go contracts selectable by native tags.
func WithNativeContracts(contracts map[string]hostfuncs.Contract) Option {
	return func(c *executorConfig) {
		for name, contract := range contracts {
			c.contracts[name] = contract
		}
	}
}

// WithLogger sets the executor logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *executorConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTrace logs every host entry point invoked by native contracts at debug level.
func WithTrace(enabled bool) Option {
	return func(c *executorConfig) {
		c.trace = enabled
	}
}
