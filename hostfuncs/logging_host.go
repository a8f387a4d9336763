package hostfuncs

import (
	"log/slog"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
)

// LoggingHost wraps a ports.Host and logs every entry point at Debug level
// with its status or result.
type LoggingHost struct {
	inner  ports.Host
	logger *slog.Logger
}

// NewLoggingHost creates a LoggingHost. A nil logger uses slog.Default.
func NewLoggingHost(inner ports.Host, logger *slog.Logger) *LoggingHost {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingHost{inner: inner, logger: logger}
}

func (h *LoggingHost) trace(function string, args ...any) {
	h.logger.Debug("host function", append([]any{"function", function}, args...)...)
}

func (h *LoggingHost) CCall(gas int64, address entities.Address, value [entities.U256Length]byte, input, result []byte) int32 {
	status := h.inner.CCall(gas, address, value, input, result)
	h.trace("ccall", "address", address.Hex(), "value", entities.DecodeU256(value).Dec(), "input_len", len(input), "status", status)
	return status
}

func (h *LoggingHost) DCall(gas int64, address entities.Address, input, result []byte) int32 {
	status := h.inner.DCall(gas, address, input, result)
	h.trace("dcall", "address", address.Hex(), "input_len", len(input), "status", status)
	return status
}

func (h *LoggingHost) SCall(gas int64, address entities.Address, input, result []byte) int32 {
	status := h.inner.SCall(gas, address, input, result)
	h.trace("scall", "address", address.Hex(), "input_len", len(input), "status", status)
	return status
}

func (h *LoggingHost) Create(endowment [entities.U256Length]byte, code []byte, dst *entities.Address) int32 {
	status := h.inner.Create(endowment, code, dst)
	h.trace("create", "code_len", len(code), "address", dst.Hex(), "status", status)
	return status
}

func (h *LoggingHost) Suicide(refund entities.Address) {
	h.trace("suicide", "refund", refund.Hex())
	h.inner.Suicide(refund)
}

func (h *LoggingHost) BlockHash(number int64, dst *entities.Hash) {
	h.inner.BlockHash(number, dst)
	h.trace("blockhash", "number", number, "hash", dst.Hex())
}

func (h *LoggingHost) Balance(address entities.Address, dst *[entities.U256Length]byte) {
	h.inner.Balance(address, dst)
	h.trace("balance", "address", address.Hex(), "balance", entities.DecodeU256(*dst).Dec())
}

func (h *LoggingHost) Coinbase(dst *entities.Address) {
	h.inner.Coinbase(dst)
	h.trace("coinbase", "address", dst.Hex())
}

func (h *LoggingHost) Timestamp() int64 {
	ts := h.inner.Timestamp()
	h.trace("timestamp", "value", ts)
	return ts
}

func (h *LoggingHost) BlockNumber() int64 {
	n := h.inner.BlockNumber()
	h.trace("blocknumber", "value", n)
	return n
}

func (h *LoggingHost) Difficulty(dst *[entities.U256Length]byte) {
	h.inner.Difficulty(dst)
	h.trace("difficulty", "value", entities.DecodeU256(*dst).Dec())
}

func (h *LoggingHost) GasLimit(dst *[entities.U256Length]byte) {
	h.inner.GasLimit(dst)
	h.trace("gaslimit", "value", entities.DecodeU256(*dst).Dec())
}

func (h *LoggingHost) Sender(dst *entities.Address) {
	h.inner.Sender(dst)
	h.trace("sender", "address", dst.Hex())
}

func (h *LoggingHost) Address(dst *entities.Address) {
	h.inner.Address(dst)
	h.trace("address", "address", dst.Hex())
}

func (h *LoggingHost) Value(dst *[entities.U256Length]byte) {
	h.inner.Value(dst)
	h.trace("value", "value", entities.DecodeU256(*dst).Dec())
}

func (h *LoggingHost) Origin(dst *entities.Address) {
	h.inner.Origin(dst)
	h.trace("origin", "address", dst.Hex())
}

func (h *LoggingHost) Log(topics []entities.Hash, data []byte) {
	h.trace("elog", "topics", len(topics), "data_len", len(data))
	h.inner.Log(topics, data)
}

func (h *LoggingHost) Ret(data []byte) {
	h.trace("ret", "data_len", len(data))
	h.inner.Ret(data)
}

func (h *LoggingHost) InputLength() uint32 {
	n := h.inner.InputLength()
	h.trace("input_length", "value", n)
	return n
}

func (h *LoggingHost) FetchInput(dst []byte) {
	h.inner.FetchInput(dst)
	h.trace("fetch_input", "len", len(dst))
}

func (h *LoggingHost) StorageRead(key entities.Hash, dst *entities.Hash) {
	h.inner.StorageRead(key, dst)
	h.trace("storage_read", "key", key.Hex(), "value", dst.Hex())
}

func (h *LoggingHost) StorageWrite(key, value entities.Hash) {
	h.trace("storage_write", "key", key.Hex(), "value", value.Hex())
	h.inner.StorageWrite(key, value)
}

func (h *LoggingHost) Debug(msg []byte) {
	h.inner.Debug(msg)
}
