// Package schema reflects host configuration types into JSON schemas.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
)

// newReflector expands the root struct inline; nested structs go to $defs.
func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{ExpandedStruct: true}
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchema reflects v into an indented JSON schema (draft 2020-12).
func GenerateSchema(v any) ([]byte, error) {
	return marshal(newReflector().Reflect(v))
}

// WorldSchema returns the schema of world files.
func WorldSchema() ([]byte, error) {
	s := newReflector().Reflect(&entities.WorldConfig{})
	s.Title = "ewasm-host world"
	s.Description = "Block context, capabilities, limits and seeded accounts of a reference host"
	return marshal(s)
}
