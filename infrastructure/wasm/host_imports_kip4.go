//go:build wasip1 && kip4

package wasm

import (
	"runtime"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/internal/abi"
)

//go:wasmimport env create2
func host_create2(endowment, salt, codePtr, codeLen, resultPtr uint32) int32

// Create2 implements ports.Host.
func (a *HostAdapter) Create2(endowment [entities.U256Length]byte, salt entities.Hash, code []byte, dst *entities.Address) int32 {
	codeLen := abi.Len(code)
	status := host_create2(abi.WordPtr(&endowment), abi.HashPtr(&salt), abi.BytesPtr(code), codeLen, abi.AddressPtr(dst))
	runtime.KeepAlive(code)
	return status
}
