//go:build !kip4

package ports

type create2Capability interface{}
