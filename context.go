package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Sender returns the account directly responsible for this execution.
func (e *Env) Sender() entities.Address {
	return fetchAddress(e.host.Sender)
}

// Origin returns the external account that signed the original transaction.
func (e *Env) Origin() entities.Address {
	return fetchAddress(e.host.Origin)
}

// Value returns the value deposited by the call responsible for this execution.
func (e *Env) Value() *entities.U256 {
	return fetchU256(e.host.Value)
}

// Address returns the address of the executing account.
func (e *Env) Address() entities.Address {
	return fetchAddress(e.host.Address)
}

// Coinbase returns the beneficiary of the current block.
func (e *Env) Coinbase() entities.Address {
	return fetchAddress(e.host.Coinbase)
}

// Timestamp returns the current block's timestamp in Unix seconds.
func (e *Env) Timestamp() uint64 {
	//nolint:gosec // G115: the ABI carries the timestamp as i64
	return uint64(e.host.Timestamp())
}

// BlockNumber returns the number of the current block. Genesis is zero.
func (e *Env) BlockNumber() uint64 {
	//nolint:gosec // G115: the ABI carries the block number as i64
	return uint64(e.host.BlockNumber())
}

// Difficulty returns the current block's difficulty.
func (e *Env) Difficulty() *entities.U256 {
	return fetchU256(e.host.Difficulty)
}

// GasLimit returns the current block's gas limit.
func (e *Env) GasLimit() *entities.U256 {
	return fetchU256(e.host.GasLimit)
}

// Balance returns the balance of address. Accounts the host has never seen have
// a zero balance.
func (e *Env) Balance(address entities.Address) *entities.U256 {
	return fetchU256(func(dst *[entities.U256Length]byte) {
		e.host.Balance(address, dst)
	})
}

// BlockHash returns the hash of block number, or the zero hash when number is
// outside the host's window of recent ancestors.
func (e *Env) BlockHash(number uint64) entities.Hash {
	return fetchHash(func(dst *entities.Hash) {
		//nolint:gosec // G115: the ABI carries the block number as i64
		e.host.BlockHash(int64(number), dst)
	})
}
