//go:build kip4

package hostfuncs

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

func (h *LoggingHost) Create2(endowment [entities.U256Length]byte, salt entities.Hash, code []byte, dst *entities.Address) int32 {
	status := h.inner.Create2(endowment, salt, code, dst)
	h.trace("create2", "salt", salt.Hex(), "code_len", len(code), "address", dst.Hex(), "status", status)
	return status
}
