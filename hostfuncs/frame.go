package hostfuncs

import (
	"bytes"
	"context"
	"log/slog"
	"slices"

	"github.com/holiman/uint256"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// FrameHost serves the host entry points for one executing frame.
// It implements ports.Host, so native contracts run the SDK directly against it,
// and the wazero adapter marshals guest memory onto the same methods.
//
// Entry points that cannot complete panic with *errors.HostTrap, which fails
// the frame.
type FrameHost struct {
	ctx     context.Context
	machine *Machine
	halt    *entities.Halt
	value   *entities.U256
	input   []byte
	gas     uint64
	depth   int
	origin  entities.Address
	caller  entities.Address
	self    entities.Address
	static  bool
}

func newFrameHost(ctx context.Context, m *Machine, origin entities.Address, msg message) *FrameHost {
	value := msg.value
	if value == nil {
		value = zeroU256()
	}
	return &FrameHost{
		ctx:     ctx,
		machine: m,
		origin:  origin,
		caller:  msg.caller,
		self:    msg.address,
		value:   value,
		input:   msg.input,
		gas:     msg.gas,
		depth:   msg.depth,
		static:  msg.static,
	}
}

// Context returns the context of the transaction the frame belongs to.
func (h *FrameHost) Context() context.Context {
	return h.ctx
}

// Halt returns how the frame stopped: the halt recorded by Ret or Suicide, or
// a stop when neither was called.
func (h *FrameHost) Halt() *entities.Halt {
	if h.halt == nil {
		return entities.Stopped()
	}
	return h.halt
}

// Static reports whether state mutation is forbidden in this frame.
func (h *FrameHost) Static() bool {
	return h.static
}

// Depth returns the call depth of the frame; the transaction frame is zero.
func (h *FrameHost) Depth() int {
	return h.depth
}

// Capabilities returns the optional entry points enabled for the frame.
func (h *FrameHost) Capabilities() entities.CapabilityConfig {
	return h.machine.config.capabilities
}

func (h *FrameHost) logger() *slog.Logger {
	return h.machine.config.logger
}

func (h *FrameHost) world() *World {
	return h.machine.world
}

func (h *FrameHost) requireMutable(operation string) {
	if h.static {
		trap(operation, "state mutation in static frame")
	}
}

func (h *FrameHost) fail(operation string, target entities.Address, err error) int32 {
	h.logger().DebugContext(h.ctx, "call failed",
		"function", operation,
		"address", target.Hex(),
		"depth", h.Depth(),
		"static", h.Static(),
		"error", err,
	)
	return 1
}

// finish copies the callee output into result and converts the outcome to a status.
func (h *FrameHost) finish(operation string, callee entities.Address, halt *entities.Halt, err error, result []byte) int32 {
	if err != nil {
		return h.fail(operation, callee, err)
	}
	copy(result, halt.Output())
	return 0
}

func (h *FrameHost) child(gas uint64) message {
	return message{gas: gas, depth: h.depth + 1}
}

// CCall transfers value to address and runs its code.
func (h *FrameHost) CCall(gas int64, address entities.Address, value [entities.U256Length]byte, input, result []byte) int32 {
	v := entities.DecodeU256(value)
	if !v.IsZero() {
		h.requireMutable("ccall")
	}
	msg := h.child(uint64(gas)) //nolint:gosec // G115: gas is an opaque limit
	msg.caller = h.self
	msg.address = address
	msg.codeAddress = address
	msg.value = v
	msg.input = bytes.Clone(input)
	msg.static = h.static
	msg.transfer = true

	halt, err := h.machine.call(h.ctx, h.origin, msg)
	return h.finish("ccall", address, halt, err, result)
}

// DCall runs the code of address with this frame's account, caller and value.
func (h *FrameHost) DCall(gas int64, address entities.Address, input, result []byte) int32 {
	msg := h.child(uint64(gas)) //nolint:gosec // G115: gas is an opaque limit
	msg.caller = h.caller
	msg.address = h.self
	msg.codeAddress = address
	msg.value = h.value
	msg.input = bytes.Clone(input)
	msg.static = h.static

	halt, err := h.machine.call(h.ctx, h.origin, msg)
	return h.finish("dcall", address, halt, err, result)
}

// SCall runs the code of address with state mutation forbidden.
func (h *FrameHost) SCall(gas int64, address entities.Address, input, result []byte) int32 {
	msg := h.child(uint64(gas)) //nolint:gosec // G115: gas is an opaque limit
	msg.caller = h.self
	msg.address = address
	msg.codeAddress = address
	msg.value = zeroU256()
	msg.input = bytes.Clone(input)
	msg.static = true

	halt, err := h.machine.call(h.ctx, h.origin, msg)
	return h.finish("scall", address, halt, err, result)
}

func (h *FrameHost) create(operation string, endowment [entities.U256Length]byte, code []byte, salt *entities.Hash, dst *entities.Address) int32 {
	h.requireMutable(operation)
	msg := h.child(h.gas)
	msg.caller = h.self
	msg.value = entities.DecodeU256(endowment)

	addr, _, err := h.machine.create(h.ctx, h.origin, msg, bytes.Clone(code), salt)
	if err != nil {
		return h.fail(operation, addr, err)
	}
	*dst = addr
	return 0
}

// Create deploys code with endowment and writes the new address to dst.
func (h *FrameHost) Create(endowment [entities.U256Length]byte, code []byte, dst *entities.Address) int32 {
	return h.create("create", endowment, code, nil, dst)
}

// Create2 is Create with the address derived from salt and the code hash.
func (h *FrameHost) Create2(endowment [entities.U256Length]byte, salt entities.Hash, code []byte, dst *entities.Address) int32 {
	if !h.Capabilities().Create2 {
		trap("create2", "capability not enabled")
	}
	return h.create("create2", endowment, code, &salt, dst)
}

// Suicide moves the whole balance to refund and schedules the account for
// deletion at the end of the transaction. Refunding to the account itself
// destroys the balance.
func (h *FrameHost) Suicide(refund entities.Address) {
	h.requireMutable("suicide")
	w := h.world()
	balance := w.Balance(h.self)
	w.SetBalance(refund, new(uint256.Int).Add(w.Balance(refund), balance))
	w.SetBalance(h.self, zeroU256())
	w.MarkSuicided(h.self)
	h.halt = entities.Suicided(refund)
}

// BlockHash writes the hash of block number to dst; zero outside the window.
func (h *FrameHost) BlockHash(number int64, dst *entities.Hash) {
	if number < 0 {
		*dst = entities.Hash{}
		return
	}
	*dst = h.world().Block().BlockHash(uint64(number))
}

// Balance writes the balance of address to dst.
func (h *FrameHost) Balance(address entities.Address, dst *[entities.U256Length]byte) {
	*dst = entities.EncodeU256(h.world().Balance(address))
}

func (h *FrameHost) Coinbase(dst *entities.Address) {
	*dst = h.world().Block().Coinbase
}

func (h *FrameHost) Timestamp() int64 {
	//nolint:gosec // G115: the ABI carries the timestamp as i64
	return int64(h.world().Block().Timestamp)
}

func (h *FrameHost) BlockNumber() int64 {
	//nolint:gosec // G115: the ABI carries the block number as i64
	return int64(h.world().Block().Number)
}

func (h *FrameHost) Difficulty(dst *[entities.U256Length]byte) {
	*dst = entities.EncodeU256(h.world().Block().difficulty())
}

func (h *FrameHost) GasLimit(dst *[entities.U256Length]byte) {
	*dst = entities.EncodeU256(h.world().Block().gasLimit())
}

func (h *FrameHost) Sender(dst *entities.Address) {
	*dst = h.caller
}

func (h *FrameHost) Address(dst *entities.Address) {
	*dst = h.self
}

func (h *FrameHost) Value(dst *[entities.U256Length]byte) {
	*dst = entities.EncodeU256(h.value)
}

func (h *FrameHost) Origin(dst *entities.Address) {
	*dst = h.origin
}

// GasLeft reports the gas the frame was started with. Gas is not metered.
func (h *FrameHost) GasLeft() int64 {
	if !h.Capabilities().GasLeft {
		trap("gasleft", "capability not enabled")
	}
	//nolint:gosec // G115: the ABI carries gas as i64
	return int64(h.gas)
}

// Log appends a record for the executing account.
func (h *FrameHost) Log(topics []entities.Hash, data []byte) {
	h.requireMutable("elog")
	if len(topics) > entities.MaxTopics {
		trap("elog", "too many topics")
	}
	h.world().AddLog(entities.LogRecord{
		Address: h.self,
		Topics:  slices.Clone(topics),
		Data:    bytes.Clone(data),
	})
}

// Ret records data as the frame result.
func (h *FrameHost) Ret(data []byte) {
	h.halt = entities.Returned(data)
}

func (h *FrameHost) InputLength() uint32 {
	//nolint:gosec // G115: input sizes are bounded by the runtime
	return uint32(len(h.input))
}

func (h *FrameHost) FetchInput(dst []byte) {
	copy(dst, h.input)
}

func (h *FrameHost) StorageRead(key entities.Hash, dst *entities.Hash) {
	*dst = h.world().State(h.self, key)
}

func (h *FrameHost) StorageWrite(key, value entities.Hash) {
	h.requireMutable("storage_write")
	h.world().SetState(h.self, key, value)
}

// Debug writes msg to the machine logger.
func (h *FrameHost) Debug(msg []byte) {
	h.logger().DebugContext(h.ctx, "contract debug",
		"address", h.self.Hex(),
		"message", string(msg),
	)
}
