package ports

import "github.com/reglet-dev/ewasm-sdk/go/domain/entities"

// WorldParser parses raw bytes into a WorldConfig.
type WorldParser interface {
	// Parse unmarshals data into a WorldConfig struct.
	Parse(data []byte) (*entities.WorldConfig, error)

	// Document unmarshals data into generic JSON-compatible values.
	Document(data []byte) (any, error)
}
