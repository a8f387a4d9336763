package hostfuncs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/reglet-dev/ewasm-sdk/go"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
)

// CodeRunner executes account code for one frame.
// A returned error fails the frame; the halt is ignored in that case.
type CodeRunner interface {
	Run(ctx context.Context, host *FrameHost, code []byte) (*entities.Halt, error)
}

// RunnerFunc adapts a function to CodeRunner.
type RunnerFunc func(ctx context.Context, host *FrameHost, code []byte) (*entities.Halt, error)

// Run implements CodeRunner.
func (f RunnerFunc) Run(ctx context.Context, host *FrameHost, code []byte) (*entities.Halt, error) {
	return f(ctx, host, code)
}

// Contract is a contract written in Go against the SDK.
type Contract func(env *sdk.Env)

// NativePrefix marks account code that names a native contract.
const NativePrefix = "native:"

// NativeCode returns the account code that selects the native contract name.
func NativeCode(name string) []byte {
	return []byte(NativePrefix + name)
}

// NativeRunner runs Go contracts selected by NativeCode tags. Code without the
// tag goes to Fallback. When Trace is set, every host entry point of a native
// contract is logged through a LoggingHost.
type NativeRunner struct {
	Contracts map[string]Contract
	Fallback  CodeRunner
	Trace     *slog.Logger
}

// NewNativeRunner creates a NativeRunner.
func NewNativeRunner(contracts map[string]Contract, fallback CodeRunner) *NativeRunner {
	if contracts == nil {
		contracts = make(map[string]Contract)
	}
	return &NativeRunner{Contracts: contracts, Fallback: fallback}
}

// Run implements CodeRunner.
func (r *NativeRunner) Run(ctx context.Context, host *FrameHost, code []byte) (*entities.Halt, error) {
	name, ok := strings.CutPrefix(string(code), NativePrefix)
	if !ok {
		if r.Fallback == nil {
			return nil, fmt.Errorf("no runner for code of account %s", host.self.Hex())
		}
		return r.Fallback.Run(ctx, host, code)
	}

	contract, ok := r.Contracts[name]
	if !ok {
		return nil, fmt.Errorf("unknown native contract %q", name)
	}

	var target ports.Host = host
	if r.Trace != nil {
		target = NewLoggingHost(host, r.Trace)
	}
	env := sdk.New(target, sdk.WithLogger(host.logger()))
	return invokeNative(env, contract)
}

// invokeNative runs contract and turns host traps and stray panics into errors.
func invokeNative(env *sdk.Env, contract Contract) (halt *entities.Halt, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if trap, ok := r.(*errors.HostTrap); ok {
			halt, err = nil, trap
			return
		}
		halt, err = nil, fmt.Errorf("contract panicked: %v", r)
	}()

	return sdk.Invoke(env, contract)
}
