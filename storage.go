package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Read returns the value stored under key for the current account, or the zero
// hash if the key was never written.
func (e *Env) Read(key entities.Hash) entities.Hash {
	return fetchHash(func(dst *entities.Hash) {
		e.host.StorageRead(key, dst)
	})
}

// Write stores value under key for the current account.
func (e *Env) Write(key, value entities.Hash) {
	e.host.StorageWrite(key, value)
}
