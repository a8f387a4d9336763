//go:build kip6

package hostfuncs

func (h *LoggingHost) GasLeft() int64 {
	gas := h.inner.GasLeft()
	h.trace("gasleft", "value", gas)
	return gas
}
