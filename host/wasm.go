package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	adapter "github.com/reglet-dev/ewasm-sdk/go/infrastructure/wazero"
)

// newRuntime creates a wazero runtime with WASI and the contract host module.
// Guest execution is aborted when the call context is done.
func newRuntime(ctx context.Context, cfg *entities.WorldConfig) (wazero.Runtime, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
	}

	opts := []adapter.AdapterOption{adapter.WithCapabilities(cfg.Capabilities)}
	if cfg.Limits.MaxRequestSize > 0 {
		opts = append(opts, adapter.WithMaxRequestSize(cfg.Limits.MaxRequestSize))
	}
	if err := adapter.RegisterWithRuntime(ctx, rt, opts...); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}
	return rt, nil
}
