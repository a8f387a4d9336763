package host

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reglet-dev/ewasm-sdk/go/application/validation"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
	"github.com/reglet-dev/ewasm-sdk/go/infrastructure/parser"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	parser    ports.WorldParser
	validator ports.WorldValidator
}

// Loader orchestrates the world file loading pipeline: schema check of the raw
// document, parse, then field validation.
type Loader struct {
	config loaderConfig
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithParser sets a custom world parser.
func WithParser(p ports.WorldParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithValidator sets a custom world validator.
func WithValidator(v ports.WorldValidator) LoaderOption {
	return func(c *loaderConfig) {
		c.validator = v
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) (*Loader, error) {
	cfg := loaderConfig{parser: parser.NewYamlWorldParser()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.validator == nil {
		v, err := validation.NewWorldValidator()
		if err != nil {
			return nil, fmt.Errorf("failed to create world validator: %w", err)
		}
		cfg.validator = v
	}
	return &Loader{config: cfg}, nil
}

// Load parses and validates a world file. Relative code_file paths are
// resolved against baseDir.
func (l *Loader) Load(raw []byte, baseDir string) (*entities.WorldConfig, error) {
	doc, err := l.config.parser.Document(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse world: %w", err)
	}
	if err := l.config.validator.ValidateDocument(doc); err != nil {
		return nil, fmt.Errorf("world does not match schema: %w", err)
	}

	cfg, err := l.config.parser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse world: %w", err)
	}
	if err := l.config.validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("world validation failed: %w", err)
	}

	for i := range cfg.Accounts {
		acc := &cfg.Accounts[i]
		if acc.CodeFile != "" && !filepath.IsAbs(acc.CodeFile) {
			acc.CodeFile = filepath.Join(baseDir, acc.CodeFile)
		}
	}
	return cfg, nil
}

// LoadFile reads and loads the world file at path.
func (l *Loader) LoadFile(path string) (*entities.WorldConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world file: %w", err)
	}
	return l.Load(raw, filepath.Dir(path))
}
