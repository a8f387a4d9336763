package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// fetch hands a zeroed fixed-size buffer to accessor exactly once and decodes it.
func fetch[B any, T any](accessor func(*B), decode func(B) T) T {
	var buf B
	accessor(&buf)
	return decode(buf)
}

func identity[T any](v T) T { return v }

func fetchAddress(accessor func(*entities.Address)) entities.Address {
	return fetch(accessor, identity[entities.Address])
}

func fetchHash(accessor func(*entities.Hash)) entities.Hash {
	return fetch(accessor, identity[entities.Hash])
}

func fetchU256(accessor func(*[entities.U256Length]byte)) *entities.U256 {
	return fetch(accessor, entities.DecodeU256)
}
