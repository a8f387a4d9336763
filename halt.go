package sdk

import (
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// Ret hands data to the host as the result of the current call and halts.
// Ret never returns.
func (e *Env) Ret(data []byte) {
	e.host.Ret(data)
	panic(entities.Returned(data))
}

// Suicide halts execution, marks the current account for deletion and transfers
// its remaining balance to refund. Suicide never returns.
func (e *Env) Suicide(refund entities.Address) {
	e.host.Suicide(refund)
	panic(entities.Suicided(refund))
}

// Invoke runs entry against env and intercepts the ways a contract can stop:
//   - entry returns: a HaltStop halt;
//   - Ret or Suicide: the corresponding halt;
//   - a contract violation: a nil halt and the *errors.ContractViolation.
//
// Any other panic is re-raised.
func Invoke(env *Env, entry func(*Env)) (halt *entities.Halt, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		switch v := r.(type) {
		case *entities.Halt:
			halt, err = v, nil
		case *errors.ContractViolation:
			env.logger.Debug("contract violation", "function", v.Operation, "reason", v.Reason)
			halt, err = nil, v
		default:
			panic(r)
		}
	}()

	entry(env)
	return entities.Stopped(), nil
}
