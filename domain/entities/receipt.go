package entities

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MaxTopics is the maximum number of topics a log record may carry.
const MaxTopics = 4

// LogRecord is an event emitted by a contract.
// Topic order is preserved; consumers filter by topic index.
type LogRecord struct {
	Address Address       `json:"address"`
	Topics  []Hash        `json:"topics"`
	Data    hexutil.Bytes `json:"data"`
}

// Message is a top-level call submitted to a host.
type Message struct {
	// Value is transferred from From to To before execution. Nil means zero.
	Value *U256         `json:"value,omitempty"`
	Input hexutil.Bytes `json:"input,omitempty"`
	Gas   uint64        `json:"gas"`
	From  Address       `json:"from"`
	To    Address       `json:"to"`
}

// ReceiptStatus is the binary outcome of a top-level execution.
type ReceiptStatus string

const (
	// ReceiptStatusSuccess indicates the frame halted normally and its effects were kept.
	ReceiptStatusSuccess ReceiptStatus = "success"

	// ReceiptStatusFailure indicates the frame trapped and its effects were reverted.
	ReceiptStatusFailure ReceiptStatus = "failure"
)

// Receipt reports a top-level execution.
type Receipt struct {
	// ContractAddress is set for deployments.
	ContractAddress *Address `json:"contractAddress,omitempty"`

	// Error describes why the frame failed.
	Error *ErrorDetail `json:"error,omitempty"`

	Status ReceiptStatus `json:"status"`
	Halt   HaltKind      `json:"halt,omitempty"`
	Output hexutil.Bytes `json:"output,omitempty"`
	Logs   []LogRecord   `json:"logs,omitempty"`
}

// Succeeded reports whether the receipt status is success.
func (r *Receipt) Succeeded() bool {
	return r != nil && r.Status == ReceiptStatusSuccess
}
