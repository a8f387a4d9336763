package ports

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Host is the catalogue of primitive operations a contract host provides.
//
// Each method is one host round trip. Pointers and lengths of the raw ABI are
// replaced by caller-owned buffers: fixed-size results are written into the
// destination array, variable results into the supplied slice up to its length.
// Implementations perform no validation on behalf of the caller and return the
// raw int32 status where the ABI has one (0 means success).
//
// Optional entry points are part of the interface only when the matching build
// tag is set: Create2 with "kip4", GasLeft with "kip6".
type Host interface {
	CallHost
	ContextHost
	ChannelHost
	StorageHost
	create2Capability
	gasLeftCapability
}

// CallHost covers the message-call and account lifecycle entry points.
type CallHost interface {
	// CCall transfers value to address and executes its code with input.
	CCall(gas int64, address entities.Address, value [entities.U256Length]byte, input, result []byte) int32

	// DCall executes the code of address in the context of the current account.
	DCall(gas int64, address entities.Address, input, result []byte) int32

	// SCall executes address with state mutation disallowed in the callee and its sub-calls.
	SCall(gas int64, address entities.Address, input, result []byte) int32

	// Create deploys code with an initial balance and writes the new address into dst.
	Create(endowment [entities.U256Length]byte, code []byte, dst *entities.Address) int32

	// Suicide marks the current account for deletion and halts. It must not return.
	Suicide(refund entities.Address)
}

// ContextHost covers the transaction and block context accessors.
type ContextHost interface {
	BlockHash(number int64, dst *entities.Hash)
	Balance(address entities.Address, dst *[entities.U256Length]byte)
	Coinbase(dst *entities.Address)
	Timestamp() int64
	BlockNumber() int64
	Difficulty(dst *[entities.U256Length]byte)
	GasLimit(dst *[entities.U256Length]byte)
	Sender(dst *entities.Address)
	Address(dst *entities.Address)
	Value(dst *[entities.U256Length]byte)
	Origin(dst *entities.Address)
}

// ChannelHost covers call input, return data, events and debug output.
type ChannelHost interface {
	// Log records an event. More than entities.MaxTopics topics traps the caller.
	Log(topics []entities.Hash, data []byte)

	// Ret hands data to the host as the call result and halts. It must not return.
	Ret(data []byte)

	InputLength() uint32

	// FetchInput copies the whole call input into dst, which must be InputLength bytes.
	FetchInput(dst []byte)

	// Debug forwards a diagnostic message to the host log.
	Debug(msg []byte)
}

// StorageHost is the persistent key-value store of the current account.
type StorageHost interface {
	StorageRead(key entities.Hash, dst *entities.Hash)
	StorageWrite(key, value entities.Hash)
}
