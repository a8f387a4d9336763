// Package wazero provides adapters for serving the contract host ABI with the wazero runtime.
package wazero

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/sys"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// DefaultModuleName is the import module contracts link against.
const DefaultModuleName = "env"

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// ModuleName is the host module name (default: "env").
	ModuleName string

	// Capabilities selects the optional exports: create2 and gasleft.
	Capabilities entities.CapabilityConfig

	// MaxRequestSize limits the size of buffers read from guest memory.
	// Default is hostfuncs.DefaultMaxRequestSize.
	MaxRequestSize uint32
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithModuleName sets the host module name (default: "env").
func WithModuleName(name string) AdapterOption {
	return func(c *AdapterConfig) {
		c.ModuleName = name
	}
}

// WithMaxRequestSize sets the maximum request size from guest memory.
func WithMaxRequestSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		if size > 0 {
			c.MaxRequestSize = size
		}
	}
}

// WithCapabilities enables the optional exports.
func WithCapabilities(caps entities.CapabilityConfig) AdapterOption {
	return func(c *AdapterConfig) {
		c.Capabilities = caps
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		ModuleName:     DefaultModuleName,
		MaxRequestSize: hostfuncs.DefaultMaxRequestSize,
	}
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

// hostFunction is one export of the host module.
type hostFunction struct {
	fn      api.GoModuleFunc
	name    string
	params  []api.ValueType
	results []api.ValueType
}

// RegisterWithRuntime instantiates the host module on runtime.
//
// Each export reads its arguments from the memory of the calling module,
// invokes the FrameHost bound to the call context with WithFrameHost and writes
// results back. ret and suicide close the calling module with exit code 0, so
// guest code never resumes after them.
//
// Example:
//
//	runtime := wazero.NewRuntime(ctx)
//	err := wazero.RegisterWithRuntime(ctx, runtime,
//	    wazero.WithCapabilities(entities.CapabilityConfig{Create2: true}),
//	)
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(cfg.ModuleName)
	for _, f := range exports(cfg) {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// Exports lists the names RegisterWithRuntime exports for the given options.
func Exports(opts ...AdapterOption) []string {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	fns := exports(cfg)
	names := make([]string, len(fns))
	for i, f := range fns {
		names[i] = f.name
	}
	return names
}

func exports(cfg AdapterConfig) []hostFunction {
	limit := cfg.MaxRequestSize
	fns := []hostFunction{
		{name: "ccall", params: []api.ValueType{i64, i32, i32, i32, i32, i32, i32}, results: []api.ValueType{i32}, fn: ccall(limit)},
		{name: "dcall", params: []api.ValueType{i64, i32, i32, i32, i32, i32}, results: []api.ValueType{i32}, fn: dcall(limit)},
		{name: "scall", params: []api.ValueType{i64, i32, i32, i32, i32, i32}, results: []api.ValueType{i32}, fn: scall(limit)},
		{name: "blockhash", params: []api.ValueType{i64, i32}, fn: blockhash},
		{name: "balance", params: []api.ValueType{i32, i32}, fn: balance},
		{name: "coinbase", params: []api.ValueType{i32}, fn: addressAccessor("coinbase", (*hostfuncs.FrameHost).Coinbase)},
		{name: "sender", params: []api.ValueType{i32}, fn: addressAccessor("sender", (*hostfuncs.FrameHost).Sender)},
		{name: "origin", params: []api.ValueType{i32}, fn: addressAccessor("origin", (*hostfuncs.FrameHost).Origin)},
		{name: "address", params: []api.ValueType{i32}, fn: addressAccessor("address", (*hostfuncs.FrameHost).Address)},
		{name: "value", params: []api.ValueType{i32}, fn: wordAccessor("value", (*hostfuncs.FrameHost).Value)},
		{name: "difficulty", params: []api.ValueType{i32}, fn: wordAccessor("difficulty", (*hostfuncs.FrameHost).Difficulty)},
		{name: "gaslimit", params: []api.ValueType{i32}, fn: wordAccessor("gaslimit", (*hostfuncs.FrameHost).GasLimit)},
		{name: "timestamp", results: []api.ValueType{i64}, fn: int64Accessor("timestamp", (*hostfuncs.FrameHost).Timestamp)},
		{name: "blocknumber", results: []api.ValueType{i64}, fn: int64Accessor("blocknumber", (*hostfuncs.FrameHost).BlockNumber)},
		{name: "elog", params: []api.ValueType{i32, i32, i32, i32}, fn: elog(limit)},
		{name: "create", params: []api.ValueType{i32, i32, i32, i32}, results: []api.ValueType{i32}, fn: create(limit)},
		{name: "suicide", params: []api.ValueType{i32}, fn: suicide},
		{name: "ret", params: []api.ValueType{i32, i32}, fn: ret(limit)},
		{name: "input_length", results: []api.ValueType{i32}, fn: inputLength},
		{name: "fetch_input", params: []api.ValueType{i32}, fn: fetchInput},
		{name: "storage_read", params: []api.ValueType{i32, i32}, fn: storageRead},
		{name: "storage_write", params: []api.ValueType{i32, i32}, fn: storageWrite},
		{name: "debug", params: []api.ValueType{i32, i32}, fn: debug(limit)},
	}
	return append(fns, capabilityExports(cfg)...)
}

func ccall(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "ccall")
		mem := memoryOf(mod, "ccall", limit)
		gas := int64(stack[0]) //nolint:gosec // G115: i64 parameter
		address := mem.readAddress(api.DecodeU32(stack[1]))
		value := mem.readWord(api.DecodeU32(stack[2]))
		input := mem.read(api.DecodeU32(stack[3]), api.DecodeU32(stack[4]))
		result := mem.view(api.DecodeU32(stack[5]), api.DecodeU32(stack[6]))

		stack[0] = api.EncodeI32(host.CCall(gas, address, value, input, result))
	}
}

type delegateCall func(h *hostfuncs.FrameHost, gas int64, address entities.Address, input, result []byte) int32

func callWithoutValue(name string, call delegateCall, limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, name)
		mem := memoryOf(mod, name, limit)
		gas := int64(stack[0]) //nolint:gosec // G115: i64 parameter
		address := mem.readAddress(api.DecodeU32(stack[1]))
		input := mem.read(api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
		result := mem.view(api.DecodeU32(stack[4]), api.DecodeU32(stack[5]))

		stack[0] = api.EncodeI32(call(host, gas, address, input, result))
	}
}

func dcall(limit uint32) api.GoModuleFunc {
	return callWithoutValue("dcall", (*hostfuncs.FrameHost).DCall, limit)
}

func scall(limit uint32) api.GoModuleFunc {
	return callWithoutValue("scall", (*hostfuncs.FrameHost).SCall, limit)
}

func blockhash(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "blockhash")
	mem := memoryOf(mod, "blockhash", 0)
	var hash entities.Hash
	host.BlockHash(int64(stack[0]), &hash) //nolint:gosec // G115: i64 parameter
	mem.write(api.DecodeU32(stack[1]), hash[:])
}

func balance(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "balance")
	mem := memoryOf(mod, "balance", 0)
	var word [entities.U256Length]byte
	host.Balance(mem.readAddress(api.DecodeU32(stack[0])), &word)
	mem.write(api.DecodeU32(stack[1]), word[:])
}

func addressAccessor(name string, get func(*hostfuncs.FrameHost, *entities.Address)) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, name)
		var addr entities.Address
		get(host, &addr)
		memoryOf(mod, name, 0).write(api.DecodeU32(stack[0]), addr[:])
	}
}

func wordAccessor(name string, get func(*hostfuncs.FrameHost, *[entities.U256Length]byte)) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, name)
		var word [entities.U256Length]byte
		get(host, &word)
		memoryOf(mod, name, 0).write(api.DecodeU32(stack[0]), word[:])
	}
}

func int64Accessor(name string, get func(*hostfuncs.FrameHost) int64) api.GoModuleFunc {
	return func(ctx context.Context, _ api.Module, stack []uint64) {
		stack[0] = api.EncodeI64(get(frameHost(ctx, name)))
	}
}

func elog(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "elog")
		mem := memoryOf(mod, "elog", limit)
		topics := mem.readHashes(api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
		data := mem.read(api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))
		host.Log(topics, data)
	}
}

func create(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "create")
		mem := memoryOf(mod, "create", limit)
		endowment := mem.readWord(api.DecodeU32(stack[0]))
		code := mem.read(api.DecodeU32(stack[1]), api.DecodeU32(stack[2]))

		var addr entities.Address
		status := host.Create(endowment, code, &addr)
		if status == 0 {
			mem.write(api.DecodeU32(stack[3]), addr[:])
		}
		stack[0] = api.EncodeI32(status)
	}
}

func suicide(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "suicide")
	refund := memoryOf(mod, "suicide", 0).readAddress(api.DecodeU32(stack[0]))
	host.Suicide(refund)
	exit(ctx, mod)
}

func ret(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "ret")
		data := memoryOf(mod, "ret", limit).read(api.DecodeU32(stack[0]), api.DecodeU32(stack[1]))
		host.Ret(data)
		exit(ctx, mod)
	}
}

// exit stops the calling module the way WASI proc_exit does.
func exit(ctx context.Context, mod api.Module) {
	_ = mod.CloseWithExitCode(ctx, 0)
	panic(sys.NewExitError(0))
}

func inputLength(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeU32(frameHost(ctx, "input_length").InputLength())
}

func fetchInput(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "fetch_input")
	dst := memoryOf(mod, "fetch_input", 0).view(api.DecodeU32(stack[0]), host.InputLength())
	host.FetchInput(dst)
}

func storageRead(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "storage_read")
	mem := memoryOf(mod, "storage_read", 0)
	var value entities.Hash
	host.StorageRead(mem.readHash(api.DecodeU32(stack[0])), &value)
	mem.write(api.DecodeU32(stack[1]), value[:])
}

func storageWrite(ctx context.Context, mod api.Module, stack []uint64) {
	host := frameHost(ctx, "storage_write")
	mem := memoryOf(mod, "storage_write", 0)
	host.StorageWrite(mem.readHash(api.DecodeU32(stack[0])), mem.readHash(api.DecodeU32(stack[1])))
}

func debug(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "debug")
		host.Debug(memoryOf(mod, "debug", limit).read(api.DecodeU32(stack[0]), api.DecodeU32(stack[1])))
	}
}
