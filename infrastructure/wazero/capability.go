package wazero

import (
	"context"

	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// capabilityExports returns the optional exports enabled in cfg. A contract
// importing a disabled one fails to instantiate.
func capabilityExports(cfg AdapterConfig) []hostFunction {
	var fns []hostFunction
	if cfg.Capabilities.Create2 {
		fns = append(fns, hostFunction{
			name:    "create2",
			params:  []api.ValueType{i32, i32, i32, i32, i32},
			results: []api.ValueType{i32},
			fn:      create2(cfg.MaxRequestSize),
		})
	}
	if cfg.Capabilities.GasLeft {
		fns = append(fns, hostFunction{
			name:    "gasleft",
			results: []api.ValueType{i64},
			fn:      gasleft,
		})
	}
	return fns
}

func create2(limit uint32) api.GoModuleFunc {
	return func(ctx context.Context, mod api.Module, stack []uint64) {
		host := frameHost(ctx, "create2")
		mem := memoryOf(mod, "create2", limit)
		endowment := mem.readWord(api.DecodeU32(stack[0]))
		salt := mem.readHash(api.DecodeU32(stack[1]))
		code := mem.read(api.DecodeU32(stack[2]), api.DecodeU32(stack[3]))

		var addr entities.Address
		status := host.Create2(endowment, salt, code, &addr)
		if status == 0 {
			mem.write(api.DecodeU32(stack[4]), addr[:])
		}
		stack[0] = api.EncodeI32(status)
	}
}

func gasleft(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = api.EncodeI64(frameHost(ctx, "gasleft").GasLeft())
}
