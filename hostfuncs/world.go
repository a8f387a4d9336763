package hostfuncs

import (
	"bytes"
	"sort"

	"github.com/holiman/uint256"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Account is the state of a single address.
type Account struct {
	Balance *entities.U256
	Storage map[entities.Hash]entities.Hash
	Code    []byte
	Nonce   uint64
}

func newAccount() *Account {
	return &Account{
		Balance: new(uint256.Int),
		Storage: make(map[entities.Hash]entities.Hash),
	}
}

// World is the in-memory chain state seen by contracts: accounts, the current
// block and the logs emitted so far.
//
// Every mutation is journaled. RevertToSnapshot undoes all mutations made after
// the matching Snapshot, so a failed frame leaves no trace.
// A World is not safe for concurrent use.
type World struct {
	accounts map[entities.Address]*Account
	suicided map[entities.Address]struct{}
	block    *BlockContext
	logs     []entities.LogRecord
	journal  []func()
}

// NewWorld creates an empty world positioned at block.
func NewWorld(block *BlockContext) *World {
	if block == nil {
		block = &BlockContext{}
	}
	return &World{
		accounts: make(map[entities.Address]*Account),
		suicided: make(map[entities.Address]struct{}),
		block:    block,
	}
}

// Block returns the block context.
func (w *World) Block() *BlockContext {
	return w.block
}

// Snapshot returns an identifier for the current state.
func (w *World) Snapshot() int {
	return len(w.journal)
}

// RevertToSnapshot undoes every mutation made since Snapshot returned id.
func (w *World) RevertToSnapshot(id int) {
	for i := len(w.journal) - 1; i >= id; i-- {
		w.journal[i]()
	}
	w.journal = w.journal[:id]
}

func (w *World) record(undo func()) {
	w.journal = append(w.journal, undo)
}

// Exists reports whether address has ever been touched.
func (w *World) Exists(address entities.Address) bool {
	_, ok := w.accounts[address]
	return ok
}

func (w *World) account(address entities.Address) *Account {
	if acc, ok := w.accounts[address]; ok {
		return acc
	}
	acc := newAccount()
	w.accounts[address] = acc
	w.record(func() { delete(w.accounts, address) })
	return acc
}

// Balance returns a copy of the balance of address. Unknown accounts hold zero.
func (w *World) Balance(address entities.Address) *entities.U256 {
	if acc, ok := w.accounts[address]; ok {
		return new(uint256.Int).Set(acc.Balance)
	}
	return new(uint256.Int)
}

// SetBalance overwrites the balance of address.
func (w *World) SetBalance(address entities.Address, amount *entities.U256) {
	acc := w.account(address)
	prev := acc.Balance
	acc.Balance = new(uint256.Int).Set(amount)
	w.record(func() { acc.Balance = prev })
}

// Transfer moves amount from one account to another. It reports false, without
// changing anything, when from cannot cover amount.
func (w *World) Transfer(from, to entities.Address, amount *entities.U256) bool {
	if amount == nil || amount.IsZero() {
		w.account(to)
		return true
	}
	fromBalance := w.Balance(from)
	if fromBalance.Lt(amount) {
		return false
	}
	w.SetBalance(from, new(uint256.Int).Sub(fromBalance, amount))
	w.SetBalance(to, new(uint256.Int).Add(w.Balance(to), amount))
	return true
}

// Nonce returns the nonce of address.
func (w *World) Nonce(address entities.Address) uint64 {
	if acc, ok := w.accounts[address]; ok {
		return acc.Nonce
	}
	return 0
}

// SetNonce overwrites the nonce of address.
func (w *World) SetNonce(address entities.Address, nonce uint64) {
	acc := w.account(address)
	prev := acc.Nonce
	acc.Nonce = nonce
	w.record(func() { acc.Nonce = prev })
}

// Code returns the code of address, nil for accounts without code.
func (w *World) Code(address entities.Address) []byte {
	if acc, ok := w.accounts[address]; ok {
		return acc.Code
	}
	return nil
}

// SetCode installs code at address.
func (w *World) SetCode(address entities.Address, code []byte) {
	acc := w.account(address)
	prev := acc.Code
	acc.Code = bytes.Clone(code)
	w.record(func() { acc.Code = prev })
}

// State returns the storage value under key, zero when unset.
func (w *World) State(address entities.Address, key entities.Hash) entities.Hash {
	if acc, ok := w.accounts[address]; ok {
		return acc.Storage[key]
	}
	return entities.Hash{}
}

// SetState stores value under key for address.
func (w *World) SetState(address entities.Address, key, value entities.Hash) {
	acc := w.account(address)
	prev, existed := acc.Storage[key]
	acc.Storage[key] = value
	w.record(func() {
		if existed {
			acc.Storage[key] = prev
		} else {
			delete(acc.Storage, key)
		}
	})
}

// AddLog appends a log record.
func (w *World) AddLog(rec entities.LogRecord) {
	w.logs = append(w.logs, rec)
	n := len(w.logs) - 1
	w.record(func() { w.logs = w.logs[:n] })
}

// Logs returns the records emitted since index from.
func (w *World) Logs(from int) []entities.LogRecord {
	if from >= len(w.logs) {
		return nil
	}
	out := make([]entities.LogRecord, len(w.logs)-from)
	copy(out, w.logs[from:])
	return out
}

// LogCount returns the number of records emitted so far.
func (w *World) LogCount() int {
	return len(w.logs)
}

// MarkSuicided schedules address for deletion at the end of the transaction.
func (w *World) MarkSuicided(address entities.Address) {
	if _, ok := w.suicided[address]; ok {
		return
	}
	w.suicided[address] = struct{}{}
	w.record(func() { delete(w.suicided, address) })
}

// HasSuicided reports whether address is scheduled for deletion.
func (w *World) HasSuicided(address entities.Address) bool {
	_, ok := w.suicided[address]
	return ok
}

// Finalise deletes the accounts scheduled by MarkSuicided and clears the journal.
// It is called once per completed transaction.
func (w *World) Finalise() {
	for address := range w.suicided {
		delete(w.accounts, address)
	}
	clear(w.suicided)
	w.journal = w.journal[:0]
}

// Addresses returns every known address in ascending order.
func (w *World) Addresses() []entities.Address {
	out := make([]entities.Address, 0, len(w.accounts))
	for address := range w.accounts {
		out = append(out, address)
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i][:], out[j][:]) < 0
	})
	return out
}
