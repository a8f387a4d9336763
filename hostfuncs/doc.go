// Package hostfuncs provides a pure Go implementation of the contract host: an
// in-memory world, the machine that executes calls and creates against it, and
// FrameHost, the per-frame implementation of ports.Host.
//
// The package has no WASM runtime dependency. Native Go contracts run through
// NativeRunner; other runners, such as the wazero adapter, plug in through
// CodeRunner and drive the same FrameHost.
package hostfuncs
