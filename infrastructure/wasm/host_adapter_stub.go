//go:build !wasip1

package wasm

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
)

// Compile-time interface compliance check
var _ ports.Host = (*HostAdapter)(nil)

const nativeHint = "WASM host adapter not available in native build. Use sdk.New() with a ports.Host such as hostfuncs.FrameHost."

// HostAdapter stub for native builds.
type HostAdapter struct{}

// NewHostAdapter creates a new HostAdapter stub.
func NewHostAdapter() *HostAdapter {
	return &HostAdapter{}
}

func (a *HostAdapter) CCall(int64, entities.Address, [entities.U256Length]byte, []byte, []byte) int32 {
	panic(nativeHint)
}

func (a *HostAdapter) DCall(int64, entities.Address, []byte, []byte) int32 {
	panic(nativeHint)
}

func (a *HostAdapter) SCall(int64, entities.Address, []byte, []byte) int32 {
	panic(nativeHint)
}

func (a *HostAdapter) Create([entities.U256Length]byte, []byte, *entities.Address) int32 {
	panic(nativeHint)
}

func (a *HostAdapter) Suicide(entities.Address) {
	panic(nativeHint)
}

func (a *HostAdapter) BlockHash(int64, *entities.Hash) {
	panic(nativeHint)
}

func (a *HostAdapter) Balance(entities.Address, *[entities.U256Length]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) Coinbase(*entities.Address) {
	panic(nativeHint)
}

func (a *HostAdapter) Timestamp() int64 {
	panic(nativeHint)
}

func (a *HostAdapter) BlockNumber() int64 {
	panic(nativeHint)
}

func (a *HostAdapter) Difficulty(*[entities.U256Length]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) GasLimit(*[entities.U256Length]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) Sender(*entities.Address) {
	panic(nativeHint)
}

func (a *HostAdapter) Address(*entities.Address) {
	panic(nativeHint)
}

func (a *HostAdapter) Value(*[entities.U256Length]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) Origin(*entities.Address) {
	panic(nativeHint)
}

func (a *HostAdapter) Log([]entities.Hash, []byte) {
	panic(nativeHint)
}

func (a *HostAdapter) Ret([]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) InputLength() uint32 {
	panic(nativeHint)
}

func (a *HostAdapter) FetchInput([]byte) {
	panic(nativeHint)
}

func (a *HostAdapter) StorageRead(entities.Hash, *entities.Hash) {
	panic(nativeHint)
}

func (a *HostAdapter) StorageWrite(entities.Hash, entities.Hash) {
	panic(nativeHint)
}

func (a *HostAdapter) Debug([]byte) {
	panic(nativeHint)
}
