//go:build kip4

package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Create2 deploys code at an address derived by the host from the current
// account, salt and the code hash.
func (e *Env) Create2(endowment *entities.U256, salt entities.Hash, code []byte) (entities.Address, error) {
	var addr entities.Address
	status := e.host.Create2(entities.EncodeU256(endowment), salt, code, &addr)
	if err := e.statusErr("create2", status); err != nil {
		return entities.Address{}, err
	}
	return addr, nil
}
