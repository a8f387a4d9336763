//go:build wasip1

// Package wasm provides infrastructure adapters that interface with the WASM host environment.
package wasm

// Host entry points of the "env" module. Pointers are i32 offsets into this
// module's linear memory; lengths are byte counts.

//go:wasmimport env ccall
//nolint:revive // names match the host ABI
func host_ccall(gas int64, address, value, inputPtr, inputLen, resultPtr, resultLen uint32) int32

//go:wasmimport env dcall
func host_dcall(gas int64, address, inputPtr, inputLen, resultPtr, resultLen uint32) int32

//go:wasmimport env scall
func host_scall(gas int64, address, inputPtr, inputLen, resultPtr, resultLen uint32) int32

//go:wasmimport env blockhash
func host_blockhash(number int64, dest uint32)

//go:wasmimport env balance
func host_balance(address, dest uint32)

//go:wasmimport env coinbase
func host_coinbase(dest uint32)

//go:wasmimport env timestamp
func host_timestamp() int64

//go:wasmimport env blocknumber
func host_blocknumber() int64

//go:wasmimport env difficulty
func host_difficulty(dest uint32)

//go:wasmimport env gaslimit
func host_gaslimit(dest uint32)

//go:wasmimport env sender
func host_sender(dest uint32)

//go:wasmimport env address
func host_address(dest uint32)

//go:wasmimport env value
func host_value(dest uint32)

//go:wasmimport env origin
func host_origin(dest uint32)

//go:wasmimport env elog
func host_elog(topicPtr, topicCount, dataPtr, dataLen uint32)

//go:wasmimport env create
func host_create(endowment, codePtr, codeLen, resultPtr uint32) int32

//go:wasmimport env suicide
func host_suicide(refund uint32)

//go:wasmimport env ret
func host_ret(ptr, length uint32)

//go:wasmimport env input_length
func host_input_length() uint32

//go:wasmimport env fetch_input
func host_fetch_input(dest uint32)

//go:wasmimport env storage_read
func host_storage_read(key, dest uint32)

//go:wasmimport env storage_write
func host_storage_write(key, value uint32)

//go:wasmimport env debug
func host_debug(ptr, length uint32)
