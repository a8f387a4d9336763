// Package wazero serves the contract host ABI from the wazero WebAssembly runtime.
//
// This package bridges the pure Go host in hostfuncs with wazero. It handles:
//
//   - Exporting the "env" host module contracts import
//   - Reading arguments from and writing results to guest memory
//   - Binding each guest call to the FrameHost of its frame
//   - Compiling and instantiating contract code per frame
//
// # Basic Usage
//
//	runtime := wazero.NewRuntime(ctx)
//	wasi_snapshot_preview1.MustInstantiate(ctx, runtime)
//
//	if err := wazero.RegisterWithRuntime(ctx, runtime); err != nil {
//	    return err
//	}
//
//	runner := wazero.NewRunner(runtime)
//	machine := hostfuncs.NewMachine(world, runner)
//
// # Optional Exports
//
// create2 and gasleft are exported only when enabled:
//
//	wazero.RegisterWithRuntime(ctx, runtime,
//	    wazero.WithCapabilities(entities.CapabilityConfig{Create2: true, GasLeft: true}),
//	)
//
// The machine must enable the same capabilities with hostfuncs.WithCapabilities.
package wazero
