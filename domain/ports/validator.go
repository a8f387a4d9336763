package ports

import "github.com/reglet-dev/ewasm-sdk/go/domain/entities"

// WorldValidator checks a world file before it is applied to a host.
type WorldValidator interface {
	// ValidateDocument checks the raw document against the world schema.
	ValidateDocument(doc any) error

	// Validate checks field values and cross-field rules of a parsed config.
	Validate(cfg *entities.WorldConfig) error
}
