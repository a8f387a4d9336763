package host

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
	adapter "github.com/reglet-dev/ewasm-sdk/go/infrastructure/wazero"
)

// Executor runs transactions against an in-memory world. Wasm code runs on a
// wazero runtime; accounts tagged as native run registered Go contracts.
// An Executor is not safe for concurrent use.
type Executor struct {
	runtime wazero.Runtime
	runner  *adapter.Runner
	machine *hostfuncs.Machine
	logger  *slog.Logger
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := defaultExecutorConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	for i, acc := range cfg.world.Accounts {
		if acc.Native == "" {
			continue
		}
		if _, ok := cfg.contracts[acc.Native]; !ok {
			return nil, &errors.ConfigError{
				Field: fmt.Sprintf("accounts[%d].native", i),
				Err:   fmt.Errorf("no native contract registered as %q", acc.Native),
			}
		}
	}

	world, err := BuildWorld(cfg.world)
	if err != nil {
		return nil, err
	}

	rt, err := newRuntime(ctx, cfg.world)
	if err != nil {
		return nil, err
	}

	runner := adapter.NewRunner(rt, adapter.WithRunnerLogger(cfg.logger))
	native := hostfuncs.NewNativeRunner(cfg.contracts, runner)
	if cfg.trace {
		native.Trace = cfg.logger
	}

	machine := hostfuncs.NewMachine(world, native,
		hostfuncs.WithLogger(cfg.logger),
		hostfuncs.WithCapabilities(cfg.world.Capabilities),
		hostfuncs.WithMaxCallDepth(cfg.world.Limits.MaxCallDepth),
	)

	return &Executor{
		runtime: rt,
		runner:  runner,
		machine: machine,
		logger:  cfg.logger,
	}, nil
}

// World returns the state the executor runs against.
func (e *Executor) World() *hostfuncs.World {
	return e.machine.World()
}

// Transact executes msg as a top-level transaction.
func (e *Executor) Transact(ctx context.Context, msg entities.Message) (*entities.Receipt, error) {
	receipt, err := e.machine.Transact(ctx, msg)
	if err != nil {
		return nil, err
	}
	e.logger.DebugContext(ctx, "transaction executed",
		"from", msg.From.Hex(),
		"to", msg.To.Hex(),
		"status", receipt.Status,
	)
	return receipt, nil
}

// Deploy runs code as the constructor of a new contract created by from.
// A nil salt derives the address from the nonce of from.
func (e *Executor) Deploy(ctx context.Context, from entities.Address, endowment *entities.U256, code []byte, salt *entities.Hash) (*entities.Receipt, error) {
	receipt, err := e.machine.Deploy(ctx, from, endowment, code, salt)
	if err != nil {
		return nil, err
	}
	attrs := []any{"from", from.Hex(), "status", receipt.Status}
	if receipt.ContractAddress != nil {
		attrs = append(attrs, "address", receipt.ContractAddress.Hex())
	}
	e.logger.DebugContext(ctx, "contract deployed", attrs...)
	return receipt, nil
}

// Close releases resources held by the executor.
func (e *Executor) Close(ctx context.Context) error {
	return stdErrors.Join(e.runner.Close(ctx), e.runtime.Close(ctx))
}
