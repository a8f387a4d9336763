// Package parser decodes world files.
package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
)

// YamlWorldParser implements WorldParser for YAML.
type YamlWorldParser struct{}

// NewYamlWorldParser creates a new YamlWorldParser.
func NewYamlWorldParser() ports.WorldParser {
	return &YamlWorldParser{}
}

// Parse unmarshals YAML bytes into a WorldConfig struct.
func (p *YamlWorldParser) Parse(data []byte) (*entities.WorldConfig, error) {
	var cfg entities.WorldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Document unmarshals YAML bytes into generic values with string map keys,
// the shape JSON schema validation expects.
func (p *YamlWorldParser) Document(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return normalize(doc), nil
}

func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}
