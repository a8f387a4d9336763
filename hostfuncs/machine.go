package hostfuncs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// DefaultMaxCallDepth bounds the nesting of calls and creates.
const DefaultMaxCallDepth = 1024

// DefaultMaxRequestSize limits the size of buffers a guest hands to the host
// (call input, code, log data, return data).
const DefaultMaxRequestSize = 1 * 1024 * 1024

// DefaultDeployGas is the gas handed to constructors started by Deploy.
// Gas is not metered; contracts only observe it through gasleft.
const DefaultDeployGas = 10_000_000

// MachineOption configures a Machine.
type MachineOption func(*machineConfig)

type machineConfig struct {
	logger       *slog.Logger
	capabilities entities.CapabilityConfig
	maxDepth     int
}

func defaultMachineConfig() machineConfig {
	return machineConfig{
		logger:   slog.Default(),
		maxDepth: DefaultMaxCallDepth,
	}
}

// WithLogger sets the logger for frame failures and contract debug messages.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(c *machineConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxCallDepth sets the call depth limit. Values below 1 are ignored.
func WithMaxCallDepth(depth int) MachineOption {
	return func(c *machineConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithCapabilities enables optional host entry points.
func WithCapabilities(caps entities.CapabilityConfig) MachineOption {
	return func(c *machineConfig) {
		c.capabilities = caps
	}
}

// Machine executes transactions against a World.
type Machine struct {
	world  *World
	runner CodeRunner
	config machineConfig
}

// NewMachine creates a Machine that executes account code with runner.
func NewMachine(world *World, runner CodeRunner, opts ...MachineOption) *Machine {
	cfg := defaultMachineConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Machine{world: world, runner: runner, config: cfg}
}

// World returns the state the machine executes against.
func (m *Machine) World() *World {
	return m.world
}

// Capabilities returns the enabled optional entry points.
func (m *Machine) Capabilities() entities.CapabilityConfig {
	return m.config.capabilities
}

// message is the input of a single frame.
type message struct {
	value       *entities.U256
	input       []byte
	gas         uint64
	depth       int
	caller      entities.Address
	address     entities.Address
	codeAddress entities.Address
	static      bool
	transfer    bool
}

// Transact executes msg as a top-level transaction. Frame failures produce a
// failed receipt; the error is reserved for cancellation.
func (m *Machine) Transact(ctx context.Context, msg entities.Message) (*entities.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := m.world
	logStart := w.LogCount()
	w.SetNonce(msg.From, w.Nonce(msg.From)+1)
	snap := w.Snapshot()

	halt, err := m.call(ctx, msg.From, message{
		caller:      msg.From,
		address:     msg.To,
		codeAddress: msg.To,
		value:       msg.Value,
		input:       msg.Input,
		gas:         msg.Gas,
		transfer:    true,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		w.RevertToSnapshot(snap)
		w.Finalise()
		return nil, ctxErr
	}

	receipt := m.receipt(halt, err, logStart)
	w.Finalise()
	return receipt, nil
}

// Deploy runs code as a constructor for a new account created by from. A nil
// salt derives the address from the creator nonce, otherwise from the salt and
// the code hash.
func (m *Machine) Deploy(ctx context.Context, from entities.Address, endowment *entities.U256, code []byte, salt *entities.Hash) (*entities.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w := m.world
	logStart := w.LogCount()
	snap := w.Snapshot()

	addr, halt, err := m.create(ctx, from, message{
		caller: from,
		value:  endowment,
		gas:    DefaultDeployGas,
	}, code, salt)
	if ctxErr := ctx.Err(); ctxErr != nil {
		w.RevertToSnapshot(snap)
		w.Finalise()
		return nil, ctxErr
	}

	receipt := m.receipt(halt, err, logStart)
	if err == nil {
		receipt.ContractAddress = &addr
	}
	w.Finalise()
	return receipt, nil
}

func (m *Machine) receipt(halt *entities.Halt, err error, logStart int) *entities.Receipt {
	if err != nil {
		return &entities.Receipt{
			Status: entities.ReceiptStatusFailure,
			Error:  errors.ToErrorDetail(err),
		}
	}
	return &entities.Receipt{
		Status: entities.ReceiptStatusSuccess,
		Halt:   halt.Kind,
		Output: halt.Output(),
		Logs:   m.world.Logs(logStart),
	}
}

// call runs the code at msg.codeAddress in the context of msg.address.
func (m *Machine) call(ctx context.Context, origin entities.Address, msg message) (*entities.Halt, error) {
	if msg.depth > m.config.maxDepth {
		return nil, ErrDepthExceeded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := m.world
	snap := w.Snapshot()
	if msg.transfer && !w.Transfer(msg.caller, msg.address, msg.value) {
		return nil, ErrInsufficientBalance
	}

	code := w.Code(msg.codeAddress)
	if len(code) == 0 {
		return entities.Stopped(), nil
	}

	halt, err := m.run(ctx, origin, msg, code)
	if err != nil {
		w.RevertToSnapshot(snap)
		return nil, err
	}
	return halt, nil
}

// create derives the new address, transfers the endowment and runs the
// constructor. Data returned by the constructor becomes the account code; a
// constructor that stops without returning installs code itself.
func (m *Machine) create(ctx context.Context, origin entities.Address, msg message, code []byte, salt *entities.Hash) (entities.Address, *entities.Halt, error) {
	if msg.depth > m.config.maxDepth {
		return entities.Address{}, nil, ErrDepthExceeded
	}

	w := m.world
	creator := msg.caller
	nonce := w.Nonce(creator)

	var addr entities.Address
	if salt == nil {
		addr = crypto.CreateAddress(creator, nonce)
	} else {
		addr = crypto.CreateAddress2(creator, *salt, crypto.Keccak256(code))
	}
	w.SetNonce(creator, nonce+1)

	if len(w.Code(addr)) > 0 || w.Nonce(addr) != 0 {
		return entities.Address{}, nil, ErrAddressCollision
	}

	snap := w.Snapshot()
	w.SetNonce(addr, 1)
	if !w.Transfer(creator, addr, msg.value) {
		w.RevertToSnapshot(snap)
		return entities.Address{}, nil, ErrInsufficientBalance
	}

	msg.address = addr
	msg.codeAddress = addr
	halt, err := m.run(ctx, origin, msg, code)
	if err != nil {
		w.RevertToSnapshot(snap)
		return entities.Address{}, nil, err
	}

	switch halt.Kind {
	case entities.HaltReturn:
		w.SetCode(addr, halt.Data)
	case entities.HaltStop:
		w.SetCode(addr, code)
	}
	return addr, halt, nil
}

func (m *Machine) run(ctx context.Context, origin entities.Address, msg message, code []byte) (*entities.Halt, error) {
	if m.runner == nil {
		return nil, fmt.Errorf("account %s has code but no runner is configured", msg.codeAddress.Hex())
	}

	host := newFrameHost(ctx, m, origin, msg)
	halt, err := m.runner.Run(ctx, host, code)
	if err != nil {
		m.config.logger.DebugContext(ctx, "frame failed",
			"address", msg.address.Hex(),
			"depth", msg.depth,
			"error", err,
		)
		return nil, err
	}
	if halt == nil {
		halt = host.Halt()
	}
	return halt, nil
}

func zeroU256() *entities.U256 {
	return new(uint256.Int)
}
