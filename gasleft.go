//go:build kip6

package sdk

// GasLeft returns the gas remaining in the current frame.
func (e *Env) GasLeft() uint64 {
	//nolint:gosec // G115: the ABI carries gas as i64
	return uint64(e.host.GasLeft())
}
