package wazero

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/sys"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// DefaultEntrypoint is the export a contract runs for every frame.
const DefaultEntrypoint = "call"

// RunnerOption configures a Runner.
type RunnerOption func(*runnerConfig)

type runnerConfig struct {
	logger     *slog.Logger
	entrypoint string
}

func defaultRunnerConfig() runnerConfig {
	return runnerConfig{
		logger:     slog.Default(),
		entrypoint: DefaultEntrypoint,
	}
}

// WithEntrypoint sets the export called for every frame (default: "call").
func WithEntrypoint(name string) RunnerOption {
	return func(c *runnerConfig) {
		if name != "" {
			c.entrypoint = name
		}
	}
}

// WithRunnerLogger sets the runner logger.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(c *runnerConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Runner executes wasm contract code on a wazero runtime. It implements
// hostfuncs.CodeRunner. The runtime must already have the host module
// registered with RegisterWithRuntime.
//
// Code is compiled once per code hash. Every frame gets a fresh anonymous
// instance, so frames never share memory.
type Runner struct {
	runtime  wazero.Runtime
	compiled map[entities.Hash]wazero.CompiledModule
	config   runnerConfig
	mu       sync.Mutex
}

// NewRunner creates a Runner on runtime.
func NewRunner(runtime wazero.Runtime, opts ...RunnerOption) *Runner {
	cfg := defaultRunnerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Runner{
		runtime:  runtime,
		compiled: make(map[entities.Hash]wazero.CompiledModule),
		config:   cfg,
	}
}

func (r *Runner) compile(ctx context.Context, code []byte) (wazero.CompiledModule, error) {
	key := crypto.Keccak256Hash(code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if mod, ok := r.compiled[key]; ok {
		return mod, nil
	}
	mod, err := r.runtime.CompileModule(ctx, code)
	if err != nil {
		return nil, err
	}
	r.compiled[key] = mod
	return mod, nil
}

// Run implements hostfuncs.CodeRunner.
func (r *Runner) Run(ctx context.Context, host *hostfuncs.FrameHost, code []byte) (*entities.Halt, error) {
	compiled, err := r.compile(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to compile contract: %w", err)
	}

	ctx = WithFrameHost(ctx, host)
	cfg := wazero.NewModuleConfig().WithName("").WithStartFunctions()
	mod, err := r.runtime.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate contract: %w", err)
	}
	defer func() {
		_ = mod.Close(ctx)
	}()

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			return outcome(host, fmt.Errorf("failed to call _initialize: %w", err))
		}
	}

	entry := mod.ExportedFunction(r.config.entrypoint)
	if entry == nil {
		return nil, fmt.Errorf("contract does not export %q", r.config.entrypoint)
	}

	_, err = entry.Call(ctx)
	halt, err := outcome(host, err)
	if err != nil {
		r.config.logger.DebugContext(ctx, "wazero: contract failed",
			"address", addressOf(host).Hex(),
			"error", err,
		)
	}
	return halt, err
}

// outcome maps the result of a guest call to the frame halt. Exit code 0 is
// how ret and suicide stop the guest.
func outcome(host *hostfuncs.FrameHost, err error) (*entities.Halt, error) {
	if err == nil {
		return host.Halt(), nil
	}
	var exitErr *sys.ExitError
	if stdErrors.As(err, &exitErr) && exitErr.ExitCode() == 0 {
		return host.Halt(), nil
	}
	return nil, err
}

func addressOf(host *hostfuncs.FrameHost) entities.Address {
	var addr entities.Address
	host.Address(&addr)
	return addr
}

// Close releases the compiled modules.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, mod := range r.compiled {
		errs = append(errs, mod.Close(ctx))
		delete(r.compiled, key)
	}
	return stdErrors.Join(errs...)
}
