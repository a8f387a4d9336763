//go:build !wasip1 && kip4

package wasm

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

func (a *HostAdapter) Create2([entities.U256Length]byte, entities.Hash, []byte, *entities.Address) int32 {
	panic(nativeHint)
}
