//go:build wasip1 && kip6

package wasm

//go:wasmimport env gasleft
func host_gasleft() int64

// GasLeft implements ports.Host.
func (a *HostAdapter) GasLeft() int64 {
	return host_gasleft()
}
