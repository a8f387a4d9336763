package hostfuncs

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// BlockHashWindow is the number of ancestors whose hashes are visible to contracts.
const BlockHashWindow = 256

// BlockContext describes the block a transaction executes in.
type BlockContext struct {
	// Hashes overrides the derived hash of individual ancestors.
	Hashes     map[uint64]entities.Hash
	Difficulty *entities.U256
	GasLimit   *entities.U256
	Coinbase   entities.Address
	Number     uint64
	Timestamp  uint64
}

// BlockHash returns the hash of block number n. Only the BlockHashWindow most
// recent ancestors answer; the current block, future blocks and older blocks
// yield the zero hash. Ancestors without a configured hash are given
// keccak256 of their big-endian number.
func (b *BlockContext) BlockHash(n uint64) entities.Hash {
	if n >= b.Number || b.Number-n > BlockHashWindow {
		return entities.Hash{}
	}
	if h, ok := b.Hashes[n]; ok {
		return h
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], n)
	return crypto.Keccak256Hash(buf[:])
}

func (b *BlockContext) difficulty() *entities.U256 {
	if b.Difficulty == nil {
		return new(uint256.Int)
	}
	return b.Difficulty
}

func (b *BlockContext) gasLimit() *entities.U256 {
	if b.GasLimit == nil {
		return new(uint256.Int)
	}
	return b.GasLimit
}
