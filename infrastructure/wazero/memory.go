package wazero

import (
	"bytes"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// guestMemory reads and writes the memory of the calling module on behalf of
// one host function. Out-of-range access traps the guest.
type guestMemory struct {
	mem      api.Memory
	function string
	maxSize  uint32
}

func memoryOf(mod api.Module, function string, maxSize uint32) guestMemory {
	mem := mod.Memory()
	if mem == nil {
		panic(&errors.HostTrap{Operation: function, Reason: "guest exports no memory"})
	}
	return guestMemory{mem: mem, function: function, maxSize: maxSize}
}

func (g guestMemory) trap(reason string) {
	panic(&errors.HostTrap{Operation: g.function, Reason: reason})
}

// view returns length bytes at ptr backed by guest memory.
func (g guestMemory) view(ptr, length uint32) []byte {
	buf, ok := g.mem.Read(ptr, length)
	if !ok {
		g.trap(fmt.Sprintf("range [%d, +%d) is out of memory bounds", ptr, length))
	}
	return buf
}

// read copies a guest buffer of at most maxSize bytes.
func (g guestMemory) read(ptr, length uint32) []byte {
	if length > g.maxSize {
		g.trap(fmt.Sprintf("request size %d exceeds maximum %d bytes", length, g.maxSize))
	}
	return bytes.Clone(g.view(ptr, length))
}

func (g guestMemory) readAddress(ptr uint32) entities.Address {
	var addr entities.Address
	copy(addr[:], g.view(ptr, entities.AddressLength))
	return addr
}

func (g guestMemory) readHash(ptr uint32) entities.Hash {
	var hash entities.Hash
	copy(hash[:], g.view(ptr, entities.HashLength))
	return hash
}

func (g guestMemory) readWord(ptr uint32) [entities.U256Length]byte {
	var word [entities.U256Length]byte
	copy(word[:], g.view(ptr, entities.U256Length))
	return word
}

func (g guestMemory) readHashes(ptr, count uint32) []entities.Hash {
	if count > entities.MaxTopics {
		g.trap("too many topics")
	}
	out := make([]entities.Hash, count)
	for i := range out {
		out[i] = g.readHash(ptr + uint32(i)*entities.HashLength) //nolint:gosec // G115: i < MaxTopics
	}
	return out
}

func (g guestMemory) write(ptr uint32, data []byte) {
	if !g.mem.Write(ptr, data) {
		g.trap(fmt.Sprintf("range [%d, +%d) is out of memory bounds", ptr, len(data)))
	}
}
