//go:build wasip1

package log

import (
	"log/slog"

	"github.com/reglet-dev/ewasm-sdk/go/infrastructure/wasm"
)

func defaultSink() DebugSink {
	return wasm.NewHostAdapter()
}

// init routes the default slog logger of a contract through the host.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
