// Command ewasm-host executes contracts against a world described in YAML.
//
// Usage:
//
//	ewasm-host run --world world.yaml --from 0xa1.. --to 0xc0.. --input 0x01
//	ewasm-host deploy --world world.yaml --from 0xa1.. --code token.wasm
//	ewasm-host schema
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
