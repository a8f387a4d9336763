package sdk

import (
	"fmt"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
)

// MaxTopics is the maximum number of topics of a log record.
const MaxTopics = entities.MaxTopics

// Log records an event with topics, in order, and data.
//
// More than MaxTopics topics is a contract violation: Log panics with an
// *errors.ContractViolation and execution does not continue.
func (e *Env) Log(topics []entities.Hash, data []byte) {
	if len(topics) > MaxTopics {
		panic(&errors.ContractViolation{
			Operation: "elog",
			Reason:    fmt.Sprintf("%d topics exceed the limit of %d", len(topics), MaxTopics),
		})
	}
	e.host.Log(topics, data)
}
