//go:build !wasip1

package log

import "os"

// stderrSink writes lines to standard error outside a wasm instance.
type stderrSink struct{}

func (stderrSink) Debug(msg []byte) {
	_, _ = os.Stderr.Write(append(msg, '\n'))
}

func defaultSink() DebugSink {
	return stderrSink{}
}
