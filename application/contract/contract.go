// Package contract provides contract registration and the wasm export lifecycle.
package contract

import (
	"fmt"

	sdk "github.com/reglet-dev/ewasm-sdk/go"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// Entry is the body of a contract.
type Entry func(env *sdk.Env)

var userContract Entry

// Register sets the contract run by the exported call entry point.
// Call it from init in the contract's main package.
func Register(entry Entry) {
	userContract = entry
}

// Registered returns the registered contract, or nil.
func Registered() Entry {
	return userContract
}

// Run invokes the registered contract against env.
func Run(env *sdk.Env) (*entities.Halt, error) {
	if userContract == nil {
		return nil, fmt.Errorf("contract not registered")
	}
	return sdk.Invoke(env, userContract)
}
