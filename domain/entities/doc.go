// Package entities provides the value types shared by the contract SDK and the
// reference host: fixed-width identifiers and their codec, halt signals, receipts
// and world configuration.
package entities
