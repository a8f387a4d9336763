package entities

// WorldConfig describes the initial state of a reference host.
// It is loaded from YAML and validated before use.
type WorldConfig struct {
	Block        BlockConfig      `yaml:"block" json:"block"`
	Capabilities CapabilityConfig `yaml:"capabilities" json:"capabilities,omitempty"`
	Limits       LimitsConfig     `yaml:"limits" json:"limits,omitempty"`
	Accounts     []AccountConfig  `yaml:"accounts" json:"accounts,omitempty" validate:"dive"`
}

// BlockConfig is the block context exposed to contracts.
type BlockConfig struct {
	// Hashes overrides the derived hash of recent ancestor blocks.
	Hashes     map[uint64]string `yaml:"hashes" json:"hashes,omitempty" validate:"dive,hash256" jsonschema:"description=Ancestor block hashes keyed by number"`
	Coinbase   string            `yaml:"coinbase" json:"coinbase,omitempty" validate:"omitempty,eth_addr" jsonschema:"description=Beneficiary of the current block"`
	Difficulty string            `yaml:"difficulty" json:"difficulty,omitempty" validate:"omitempty,u256" jsonschema:"description=Decimal or 0x-hex"`
	GasLimit   string            `yaml:"gas_limit" json:"gas_limit,omitempty" validate:"omitempty,u256" jsonschema:"description=Decimal or 0x-hex"`
	Number     uint64            `yaml:"number" json:"number,omitempty"`
	Timestamp  uint64            `yaml:"timestamp" json:"timestamp,omitempty"`
}

// CapabilityConfig enables optional host entry points.
// A disabled entry point is not exported to guests at all.
type CapabilityConfig struct {
	Create2 bool `yaml:"create2" json:"create2,omitempty" jsonschema:"description=Export create2 (deterministic create)"`
	GasLeft bool `yaml:"gas_left" json:"gas_left,omitempty" jsonschema:"description=Export gasleft"`
}

// LimitsConfig bounds host resources. Zero values select defaults.
type LimitsConfig struct {
	MaxCallDepth   int    `yaml:"max_call_depth" json:"max_call_depth,omitempty" validate:"omitempty,min=1,max=1024"`
	MaxRequestSize uint32 `yaml:"max_request_size" json:"max_request_size,omitempty"`
}

// AccountConfig seeds one account. At most one of Code, CodeFile and Native is set.
type AccountConfig struct {
	Storage  map[string]string `yaml:"storage" json:"storage,omitempty" validate:"dive,keys,hash256,endkeys,hash256"`
	Address  string            `yaml:"address" json:"address" validate:"required,eth_addr"`
	Balance  string            `yaml:"balance" json:"balance,omitempty" validate:"omitempty,u256"`
	Code     string            `yaml:"code" json:"code,omitempty" validate:"omitempty,hexbytes,excluded_with=CodeFile Native" jsonschema:"description=0x-hex contract code"`
	CodeFile string            `yaml:"code_file" json:"code_file,omitempty" validate:"omitempty,excluded_with=Native" jsonschema:"description=Path of a wasm file relative to the world file"`
	Native   string            `yaml:"native" json:"native,omitempty" jsonschema:"description=Tag of a native Go contract registered with the host"`
	Nonce    uint64            `yaml:"nonce" json:"nonce,omitempty"`
}
