//go:build kip6

package ports

type gasLeftCapability interface {
	// GasLeft returns the gas remaining in the current frame.
	GasLeft() int64
}
