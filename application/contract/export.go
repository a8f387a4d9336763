//go:build wasip1

package contract

import (
	"log/slog"

	sdk "github.com/reglet-dev/ewasm-sdk/go"
	_ "github.com/reglet-dev/ewasm-sdk/go/log" // Initialize WASM logging handler
)

// call is the entry point the host invokes once per frame. Ret and Suicide
// never come back here; any failure traps so the host fails the frame.
//
//go:wasmexport call
func call() {
	if _, err := Run(sdk.Default(sdk.WithLogger(slog.Default()))); err != nil {
		panic(err)
	}
}
