package entities

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Fixed wire sizes of the host ABI.
const (
	AddressLength = common.AddressLength
	HashLength    = common.HashLength
	U256Length    = 32
)

// Address identifies an account. The zero value is the pre-fetch default.
type Address = common.Address

// Hash is an opaque 32-byte value used for block hashes, log topics and storage slots.
type Hash = common.Hash

// U256 is a 256-bit unsigned integer with a canonical big-endian 32-byte wire form.
type U256 = uint256.Int

// EncodeU256 returns the canonical big-endian form of v. A nil v encodes as zero.
func EncodeU256(v *U256) [U256Length]byte {
	if v == nil {
		return [U256Length]byte{}
	}
	return v.Bytes32()
}

// DecodeU256 interprets buf as a big-endian unsigned integer.
// Every bit pattern is valid.
func DecodeU256(buf [U256Length]byte) *U256 {
	return new(uint256.Int).SetBytes32(buf[:])
}

// ParseU256 parses a decimal or 0x-prefixed hexadecimal string.
// The empty string parses as zero.
func ParseU256(s string) (*U256, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return new(uint256.Int), nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		digits := strings.TrimLeft(s[2:], "0")
		if digits == "" {
			return new(uint256.Int), nil
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("invalid hex u256 %q: %w", s, err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid decimal u256 %q: %w", s, err)
	}
	return v, nil
}
