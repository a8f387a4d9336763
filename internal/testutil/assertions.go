// Package testutil provides common test utilities and assertions for host tests
package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// RequireSucceeded fails the test unless the receipt reports success.
func RequireSucceeded(t *testing.T, receipt *entities.Receipt, msgAndArgs ...interface{}) {
	t.Helper()
	require.NotNil(t, receipt, msgAndArgs...)
	if !receipt.Succeeded() {
		detail := ""
		if receipt.Error != nil {
			detail = receipt.Error.Message
		}
		require.Failf(t, "receipt failed", "error: %s", detail)
	}
}

// RequireFailed fails the test unless the receipt reports failure.
func RequireFailed(t *testing.T, receipt *entities.Receipt, msgAndArgs ...interface{}) {
	t.Helper()
	require.NotNil(t, receipt, msgAndArgs...)
	require.Equal(t, entities.ReceiptStatusFailure, receipt.Status, msgAndArgs...)
}

// AssertHalt asserts the halt kind and output of a successful receipt.
func AssertHalt(t *testing.T, receipt *entities.Receipt, kind entities.HaltKind, output []byte, msgAndArgs ...interface{}) {
	t.Helper()
	RequireSucceeded(t, receipt, msgAndArgs...)
	assert.Equal(t, kind, receipt.Halt, msgAndArgs...)
	assert.Equal(t, string(output), string(receipt.Output), msgAndArgs...)
}

// AssertJSONEqual compares two JSON strings for equality, ignoring formatting
func AssertJSONEqual(t *testing.T, expected, actual string, msgAndArgs ...interface{}) {
	t.Helper()

	var expectedJSON, actualJSON interface{}
	require.NoError(t, json.Unmarshal([]byte(expected), &expectedJSON), "expected JSON is invalid")
	require.NoError(t, json.Unmarshal([]byte(actual), &actualJSON), "actual JSON is invalid")

	assert.Equal(t, expectedJSON, actualJSON, msgAndArgs...)
}
