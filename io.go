package sdk

// Input returns the input of the pending call. The data is fetched only when the
// host reports a nonzero length; otherwise an empty slice is returned.
func (e *Env) Input() []byte {
	n := e.host.InputLength()
	if n == 0 {
		return []byte{}
	}
	data := make([]byte, n)
	e.host.FetchInput(data)
	return data
}

// Debug sends msg to the host's diagnostic log.
func (e *Env) Debug(msg string) {
	e.host.Debug([]byte(msg))
}
