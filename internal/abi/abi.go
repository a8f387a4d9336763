//go:build wasip1

// Package abi converts Go buffers into the i32 linear-memory offsets expected by
// host imports. It is the only place in the SDK that performs pointer arithmetic.
//
// Callers must keep the referenced values alive until the host call returns
// (runtime.KeepAlive after the call).
package abi

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// BytesPtr returns the linear-memory offset of the first byte of b, or 0 if b is empty.
func BytesPtr(b []byte) uint32 {
	if len(b) == 0 {
		return 0
	}
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// Len returns len(b) as an ABI length. Panics if it does not fit in 32 bits.
func Len(b []byte) uint32 {
	if uint64(len(b)) > math.MaxUint32 {
		panic(fmt.Sprintf("abi: buffer length %d exceeds 32-bit range", len(b)))
	}
	return uint32(len(b))
}

// WordPtr returns the offset of a 32-byte word.
func WordPtr(w *[entities.U256Length]byte) uint32 {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return uint32(uintptr(unsafe.Pointer(w)))
}

// AddressPtr returns the offset of a 20-byte address.
func AddressPtr(a *entities.Address) uint32 {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return uint32(uintptr(unsafe.Pointer(a)))
}

// HashPtr returns the offset of a 32-byte hash.
func HashPtr(h *entities.Hash) uint32 {
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return uint32(uintptr(unsafe.Pointer(h)))
}

// HashesPtr returns the offset of a contiguous run of hashes, or 0 if empty.
// The host reads len(hs)*32 bytes from it.
func HashesPtr(hs []entities.Hash) uint32 {
	if len(hs) == 0 {
		return 0
	}
	//nolint:gosec // G103: Valid unsafe.Pointer use for WASM linear memory access
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(hs))))
}
