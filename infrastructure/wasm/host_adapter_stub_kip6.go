//go:build !wasip1 && kip6

package wasm

func (a *HostAdapter) GasLeft() int64 { panic(nativeHint) }
