package wazero

import (
	"context"

	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/hostfuncs"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var frameHostKey = &contextKey{name: "frame_host"}

// WithFrameHost adds the host of the executing frame to the context.
// Host functions exported by RegisterWithRuntime serve the frame found here.
func WithFrameHost(ctx context.Context, host *hostfuncs.FrameHost) context.Context {
	return context.WithValue(ctx, frameHostKey, host)
}

// FrameHostFromContext retrieves the frame host from the context.
func FrameHostFromContext(ctx context.Context) (*hostfuncs.FrameHost, bool) {
	host, ok := ctx.Value(frameHostKey).(*hostfuncs.FrameHost)
	return host, ok && host != nil
}

// frameHost returns the frame host or traps the guest when none is bound.
func frameHost(ctx context.Context, function string) *hostfuncs.FrameHost {
	host, ok := FrameHostFromContext(ctx)
	if !ok {
		panic(&errors.HostTrap{Operation: function, Reason: "no frame bound to the call context"})
	}
	return host
}
