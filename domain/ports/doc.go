// Package ports defines interfaces for infrastructure operations.
// The contract SDK depends only on these abstractions; the wasm import adapter,
// the in-memory reference host and test fakes implement them.
package ports
