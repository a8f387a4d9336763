package hostfuncs

import (
	stdErrors "errors"

	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// Frame failures. A frame that fails for any of these reasons reports a
// nonzero status to its caller and leaves no state behind.
var (
	ErrInsufficientBalance = stdErrors.New("insufficient balance for transfer")
	ErrDepthExceeded       = stdErrors.New("max call depth exceeded")
	ErrAddressCollision    = stdErrors.New("contract address collision")
)

// trap aborts the current frame from inside a host entry point.
func trap(operation, reason string) {
	panic(&errors.HostTrap{Operation: operation, Reason: reason})
}
