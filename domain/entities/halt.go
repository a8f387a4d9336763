package entities

// HaltKind describes how a frame transferred control back to the host.
type HaltKind uint8

const (
	// HaltNone is the zero value: the frame did not halt, because it failed.
	HaltNone HaltKind = iota

	// HaltStop means the entry point returned normally without return data.
	HaltStop

	// HaltReturn means the frame called ret.
	HaltReturn

	// HaltSuicide means the frame called suicide.
	HaltSuicide
)

// String returns the lower-case name of the halt kind.
func (k HaltKind) String() string {
	switch k {
	case HaltNone:
		return "none"
	case HaltStop:
		return "stop"
	case HaltReturn:
		return "return"
	case HaltSuicide:
		return "suicide"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k HaltKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Halt is the terminal control signal of a frame.
// Diverging operations unwind with a *Halt as the panic value; the execution
// harness converts it into an outcome.
type Halt struct {
	// Data is the return payload for HaltReturn.
	Data []byte `json:"data,omitempty"`

	// Beneficiary receives the remaining balance for HaltSuicide.
	Beneficiary Address `json:"beneficiary,omitempty"`

	Kind HaltKind `json:"kind"`
}

// Stopped returns the halt of an entry point that returned normally.
func Stopped() *Halt {
	return &Halt{Kind: HaltStop}
}

// Returned returns a HaltReturn carrying a copy of data.
func Returned(data []byte) *Halt {
	out := make([]byte, len(data))
	copy(out, data)
	return &Halt{Kind: HaltReturn, Data: out}
}

// Suicided returns a HaltSuicide crediting beneficiary.
func Suicided(beneficiary Address) *Halt {
	return &Halt{Kind: HaltSuicide, Beneficiary: beneficiary}
}

// Output returns the bytes a caller observes in its result buffer.
func (h *Halt) Output() []byte {
	if h == nil || h.Kind != HaltReturn {
		return nil
	}
	return h.Data
}
