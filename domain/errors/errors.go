// Package errors provides domain-specific error types for the SDK and the reference host.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves as an
// ErrorDetail for receipts and wire responses.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// CallError reports that the host returned a nonzero status for a call or create.
// The host exposes no further diagnostics, so the error carries none.
type CallError struct{}

// ErrCall is the single CallError value returned by the SDK.
var ErrCall error = &CallError{}

func (*CallError) Error() string {
	return "host reported call failure"
}

// Is makes every *CallError match ErrCall.
func (*CallError) Is(target error) bool {
	_, ok := target.(*CallError)
	return ok
}

// ToErrorDetail implements DetailedError.
func (e *CallError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "call"}
}

// ContractViolation is a programming-contract breach inside a contract, such as
// emitting a log with too many topics. It is raised as a panic value and is never
// returned from an SDK operation.
type ContractViolation struct {
	Operation string
	Reason    string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Operation, e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ContractViolation) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "violation", Code: e.Operation}
}

// HostTrap aborts the current frame from inside a host entry point.
// The frame fails and its state changes are reverted.
type HostTrap struct {
	Err       error
	Operation string
	Reason    string
}

func (e *HostTrap) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("host trap in %s: %s: %v", e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("host trap in %s: %s", e.Operation, e.Reason)
}

func (e *HostTrap) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *HostTrap) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "trap", Code: e.Operation}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}
