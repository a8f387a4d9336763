//go:build !kip6

package ports

type gasLeftCapability interface{}
