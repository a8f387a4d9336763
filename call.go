package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// statusErr maps a host status to the binary call outcome: 0 is success,
// every other value is the same zero-information failure.
func (e *Env) statusErr(op string, status int32) error {
	if status == 0 {
		return nil
	}
	e.logger.Debug("host reported failure", "function", op, "status", status)
	return errors.ErrCall
}

// Call transfers value to address and executes it with input.
// The callee's output is written into result up to len(result); the caller
// sizes result. gas is passed to the host as a signed 64-bit limit.
func (e *Env) Call(gas uint64, address entities.Address, value *entities.U256, input, result []byte) error {
	//nolint:gosec // G115: the ABI carries gas as i64
	status := e.host.CCall(int64(gas), address, entities.EncodeU256(value), input, result)
	return e.statusErr("ccall", status)
}

// CallCode executes the code at address in the context of the current account:
// its storage, balance and identity. The current call value is inherited.
func (e *Env) CallCode(gas uint64, address entities.Address, input, result []byte) error {
	//nolint:gosec // G115: the ABI carries gas as i64
	status := e.host.DCall(int64(gas), address, input, result)
	return e.statusErr("dcall", status)
}

// StaticCall is CallCode's calling convention with state mutation forbidden in the
// callee and its sub-calls; an attempted mutation makes the call fail.
func (e *Env) StaticCall(gas uint64, address entities.Address, input, result []byte) error {
	//nolint:gosec // G115: the ABI carries gas as i64
	status := e.host.SCall(int64(gas), address, input, result)
	return e.statusErr("scall", status)
}

// Create deploys code with endowment as its initial balance and returns the new
// account address. It fails if the constructor failed.
func (e *Env) Create(endowment *entities.U256, code []byte) (entities.Address, error) {
	var addr entities.Address
	status := e.host.Create(entities.EncodeU256(endowment), code, &addr)
	if err := e.statusErr("create", status); err != nil {
		return entities.Address{}, err
	}
	return addr, nil
}
