package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

type hostCall struct {
	input  []byte
	name   string
	gas    int64
	addr   entities.Address
	value  [entities.U256Length]byte
	salt   entities.Hash
	resLen int
}

type logCall struct {
	topics []entities.Hash
	data   []byte
}

// fakeHost records every entry point and answers from canned state.
// Entries that write into buffers leave them untouched for unknown keys.
type fakeHost struct {
	balances map[entities.Address][entities.U256Length]byte
	hashes   map[int64]entities.Hash
	storage  map[entities.Hash]entities.Hash
	output   []byte
	input    []byte
	ret      []byte
	calls    []hostCall
	logs     []logCall
	debug    []string

	sender, origin, self, coinbase entities.Address
	created, refund                entities.Address
	value, difficulty, gasLimit    [entities.U256Length]byte

	timestamp, number, gasLeft int64
	status                     int32
	fetches                    int
	accessors                  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		balances: make(map[entities.Address][entities.U256Length]byte),
		hashes:   make(map[int64]entities.Hash),
		storage:  make(map[entities.Hash]entities.Hash),
	}
}

func (h *fakeHost) record(c hostCall, result []byte) int32 {
	c.resLen = len(result)
	h.calls = append(h.calls, c)
	copy(result, h.output)
	return h.status
}

func (h *fakeHost) CCall(gas int64, address entities.Address, value [entities.U256Length]byte, input, result []byte) int32 {
	return h.record(hostCall{name: "ccall", gas: gas, addr: address, value: value, input: input}, result)
}

func (h *fakeHost) DCall(gas int64, address entities.Address, input, result []byte) int32 {
	return h.record(hostCall{name: "dcall", gas: gas, addr: address, input: input}, result)
}

func (h *fakeHost) SCall(gas int64, address entities.Address, input, result []byte) int32 {
	return h.record(hostCall{name: "scall", gas: gas, addr: address, input: input}, result)
}

func (h *fakeHost) Create(endowment [entities.U256Length]byte, code []byte, dst *entities.Address) int32 {
	h.calls = append(h.calls, hostCall{name: "create", value: endowment, input: code})
	if h.status == 0 {
		*dst = h.created
	}
	return h.status
}

func (h *fakeHost) Create2(endowment [entities.U256Length]byte, salt entities.Hash, code []byte, dst *entities.Address) int32 {
	h.calls = append(h.calls, hostCall{name: "create2", value: endowment, salt: salt, input: code})
	if h.status == 0 {
		*dst = h.created
	}
	return h.status
}

func (h *fakeHost) Suicide(refund entities.Address) {
	h.calls = append(h.calls, hostCall{name: "suicide", addr: refund})
	h.refund = refund
}

func (h *fakeHost) BlockHash(number int64, dst *entities.Hash) {
	h.accessors++
	if hash, ok := h.hashes[number]; ok {
		*dst = hash
	}
}

func (h *fakeHost) Balance(address entities.Address, dst *[entities.U256Length]byte) {
	h.accessors++
	if bal, ok := h.balances[address]; ok {
		*dst = bal
	}
}

func (h *fakeHost) Coinbase(dst *entities.Address) {
	h.accessors++
	*dst = h.coinbase
}

func (h *fakeHost) Timestamp() int64 {
	h.accessors++
	return h.timestamp
}

func (h *fakeHost) BlockNumber() int64 {
	h.accessors++
	return h.number
}

func (h *fakeHost) GasLeft() int64 {
	h.accessors++
	return h.gasLeft
}

func (h *fakeHost) Difficulty(dst *[entities.U256Length]byte) {
	h.accessors++
	*dst = h.difficulty
}

func (h *fakeHost) GasLimit(dst *[entities.U256Length]byte) {
	h.accessors++
	*dst = h.gasLimit
}

func (h *fakeHost) Sender(dst *entities.Address) {
	h.accessors++
	*dst = h.sender
}

func (h *fakeHost) Address(dst *entities.Address) {
	h.accessors++
	*dst = h.self
}

func (h *fakeHost) Value(dst *[entities.U256Length]byte) {
	h.accessors++
	*dst = h.value
}

func (h *fakeHost) Origin(dst *entities.Address) {
	h.accessors++
	*dst = h.origin
}

func (h *fakeHost) Log(topics []entities.Hash, data []byte) {
	h.logs = append(h.logs, logCall{topics: topics, data: data})
}

func (h *fakeHost) Ret(data []byte) {
	h.calls = append(h.calls, hostCall{name: "ret", input: data})
	h.ret = data
}

func (h *fakeHost) InputLength() uint32 {
	//nolint:gosec // test fixture sizes are small
	return uint32(len(h.input))
}

func (h *fakeHost) FetchInput(dst []byte) {
	h.fetches++
	copy(dst, h.input)
}

func (h *fakeHost) StorageRead(key entities.Hash, dst *entities.Hash) {
	if v, ok := h.storage[key]; ok {
		*dst = v
	}
}

func (h *fakeHost) StorageWrite(key, value entities.Hash) {
	h.storage[key] = value
}

func (h *fakeHost) Debug(msg []byte) {
	h.debug = append(h.debug, string(msg))
}
