//go:build wasip1

package wasm

import (
	"runtime"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
	"github.com/reglet-dev/ewasm-sdk/go/internal/abi"
)

// Compile-time interface compliance check
var _ ports.Host = (*HostAdapter)(nil)

// HostAdapter implements ports.Host over the "env" host imports.
// Buffer offsets are taken immediately before each import call.
type HostAdapter struct{}

// NewHostAdapter creates a new HostAdapter.
func NewHostAdapter() *HostAdapter {
	return &HostAdapter{}
}

// CCall implements ports.Host.
func (a *HostAdapter) CCall(gas int64, address entities.Address, value [entities.U256Length]byte, input, result []byte) int32 {
	inLen, outLen := abi.Len(input), abi.Len(result)
	status := host_ccall(gas, abi.AddressPtr(&address), abi.WordPtr(&value),
		abi.BytesPtr(input), inLen, abi.BytesPtr(result), outLen)
	runtime.KeepAlive(input)
	runtime.KeepAlive(result)
	return status
}

// DCall implements ports.Host.
func (a *HostAdapter) DCall(gas int64, address entities.Address, input, result []byte) int32 {
	inLen, outLen := abi.Len(input), abi.Len(result)
	status := host_dcall(gas, abi.AddressPtr(&address), abi.BytesPtr(input), inLen, abi.BytesPtr(result), outLen)
	runtime.KeepAlive(input)
	runtime.KeepAlive(result)
	return status
}

// SCall implements ports.Host.
func (a *HostAdapter) SCall(gas int64, address entities.Address, input, result []byte) int32 {
	inLen, outLen := abi.Len(input), abi.Len(result)
	status := host_scall(gas, abi.AddressPtr(&address), abi.BytesPtr(input), inLen, abi.BytesPtr(result), outLen)
	runtime.KeepAlive(input)
	runtime.KeepAlive(result)
	return status
}

// Create implements ports.Host.
func (a *HostAdapter) Create(endowment [entities.U256Length]byte, code []byte, dst *entities.Address) int32 {
	codeLen := abi.Len(code)
	status := host_create(abi.WordPtr(&endowment), abi.BytesPtr(code), codeLen, abi.AddressPtr(dst))
	runtime.KeepAlive(code)
	return status
}

// Suicide implements ports.Host. The host closes the instance; control never comes back.
func (a *HostAdapter) Suicide(refund entities.Address) {
	host_suicide(abi.AddressPtr(&refund))
}

// BlockHash implements ports.Host.
func (a *HostAdapter) BlockHash(number int64, dst *entities.Hash) {
	host_blockhash(number, abi.HashPtr(dst))
}

// Balance implements ports.Host.
func (a *HostAdapter) Balance(address entities.Address, dst *[entities.U256Length]byte) {
	host_balance(abi.AddressPtr(&address), abi.WordPtr(dst))
}

// Coinbase implements ports.Host.
func (a *HostAdapter) Coinbase(dst *entities.Address) {
	host_coinbase(abi.AddressPtr(dst))
}

// Timestamp implements ports.Host.
func (a *HostAdapter) Timestamp() int64 {
	return host_timestamp()
}

// BlockNumber implements ports.Host.
func (a *HostAdapter) BlockNumber() int64 {
	return host_blocknumber()
}

// Difficulty implements ports.Host.
func (a *HostAdapter) Difficulty(dst *[entities.U256Length]byte) {
	host_difficulty(abi.WordPtr(dst))
}

// GasLimit implements ports.Host.
func (a *HostAdapter) GasLimit(dst *[entities.U256Length]byte) {
	host_gaslimit(abi.WordPtr(dst))
}

// Sender implements ports.Host.
func (a *HostAdapter) Sender(dst *entities.Address) {
	host_sender(abi.AddressPtr(dst))
}

// Address implements ports.Host.
func (a *HostAdapter) Address(dst *entities.Address) {
	host_address(abi.AddressPtr(dst))
}

// Value implements ports.Host.
func (a *HostAdapter) Value(dst *[entities.U256Length]byte) {
	host_value(abi.WordPtr(dst))
}

// Origin implements ports.Host.
func (a *HostAdapter) Origin(dst *entities.Address) {
	host_origin(abi.AddressPtr(dst))
}

// Log implements ports.Host.
func (a *HostAdapter) Log(topics []entities.Hash, data []byte) {
	//nolint:gosec // G115: topic count is bounded by the caller
	count, dataLen := uint32(len(topics)), abi.Len(data)
	host_elog(abi.HashesPtr(topics), count, abi.BytesPtr(data), dataLen)
	runtime.KeepAlive(topics)
	runtime.KeepAlive(data)
}

// Ret implements ports.Host. The host closes the instance; control never comes back.
func (a *HostAdapter) Ret(data []byte) {
	dataLen := abi.Len(data)
	host_ret(abi.BytesPtr(data), dataLen)
}

// InputLength implements ports.Host.
func (a *HostAdapter) InputLength() uint32 {
	return host_input_length()
}

// FetchInput implements ports.Host.
func (a *HostAdapter) FetchInput(dst []byte) {
	if len(dst) == 0 {
		return
	}
	host_fetch_input(abi.BytesPtr(dst))
	runtime.KeepAlive(dst)
}

// StorageRead implements ports.Host.
func (a *HostAdapter) StorageRead(key entities.Hash, dst *entities.Hash) {
	host_storage_read(abi.HashPtr(&key), abi.HashPtr(dst))
}

// StorageWrite implements ports.Host.
func (a *HostAdapter) StorageWrite(key, value entities.Hash) {
	host_storage_write(abi.HashPtr(&key), abi.HashPtr(&value))
}

// Debug implements ports.Host.
func (a *HostAdapter) Debug(msg []byte) {
	msgLen := abi.Len(msg)
	host_debug(abi.BytesPtr(msg), msgLen)
	runtime.KeepAlive(msg)
}
