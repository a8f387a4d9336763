//go:build kip4

package ports

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

type create2Capability interface {
	// Create2 deploys code at an address derived from the sender, salt and code hash.
	Create2(endowment [entities.U256Length]byte, salt entities.Hash, code []byte, dst *entities.Address) int32
}
