// Package validation checks world files before they reach a host.
package validation

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/reglet-dev/ewasm-sdk/go/application/schema"
	"github.com/reglet-dev/ewasm-sdk/go/domain/entities"
	"github.com/reglet-dev/ewasm-sdk/go/domain/errors"
	"github.com/reglet-dev/ewasm-sdk/go/domain/ports"
)

// validate is a package-level singleton for better performance.
// Creating a new validator on each call is expensive; reusing is recommended.
var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "u256", isU256)
	mustRegister(v, "hash256", isHash256)
	mustRegister(v, "hexbytes", isHexBytes)
	return v
}

func mustRegister(v *validator.Validate, tag string, fn func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register %s: %v", tag, err))
	}
}

// isU256 accepts decimal or 0x-hex integers that fit in 256 bits.
func isU256(s string) bool {
	_, err := entities.ParseU256(s)
	return err == nil
}

// isHash256 accepts 0x-hex of at most 32 bytes; shorter values are left-padded.
func isHash256(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) <= entities.HashLength
}

func isHexBytes(s string) bool {
	_, err := hexutil.Decode(s)
	return err == nil
}

// WorldValidator implements ports.WorldValidator.
// Documents are checked against the generated world schema, parsed configs
// with struct tags and cross-account rules.
type WorldValidator struct {
	schema *jsonschema.Schema
}

// NewWorldValidator compiles the world schema and returns a validator.
func NewWorldValidator() (ports.WorldValidator, error) {
	raw, err := schema.WorldSchema()
	if err != nil {
		return nil, err
	}

	const url = "world.schema.json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add world schema: %w", err)
	}
	sch, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("invalid world schema: %w", err)
	}
	return &WorldValidator{schema: sch}, nil
}

// ValidateDocument checks a generic document against the world schema.
func (v *WorldValidator) ValidateDocument(doc any) error {
	// Round trip through JSON so numbers and nested values have the types the
	// schema validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return &errors.ConfigError{Err: fmt.Errorf("document is not JSON compatible: %w", err)}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var normalized any
	if err := dec.Decode(&normalized); err != nil {
		return &errors.ConfigError{Err: err}
	}

	if err := v.schema.Validate(normalized); err != nil {
		var ve *jsonschema.ValidationError
		if stdErrors.As(err, &ve) {
			return schemaErrors(ve)
		}
		return &errors.ConfigError{Err: err}
	}
	return nil
}

// schemaErrors flattens the leaf causes of a schema validation error.
func schemaErrors(ve *jsonschema.ValidationError) error {
	var errs []error
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			errs = append(errs, &errors.ConfigError{
				Field: strings.TrimPrefix(e.InstanceLocation, "/"),
				Err:   stdErrors.New(e.Message),
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return stdErrors.Join(errs...)
}

// Validate checks field formats and rules that span accounts.
func (v *WorldValidator) Validate(cfg *entities.WorldConfig) error {
	if cfg == nil {
		return &errors.ConfigError{Err: stdErrors.New("world config is nil")}
	}

	var errs []error
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !stdErrors.As(err, &fieldErrs) {
			return &errors.ConfigError{Err: err}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &errors.ConfigError{
				Field: fieldPath(fe.Namespace()),
				Err:   fmt.Errorf("failed on the '%s' rule", fe.Tag()),
			})
		}
	}

	seen := make(map[string]int, len(cfg.Accounts))
	for i, acc := range cfg.Accounts {
		key := strings.ToLower(acc.Address)
		if first, ok := seen[key]; ok {
			errs = append(errs, &errors.ConfigError{
				Field: fmt.Sprintf("accounts[%d].address", i),
				Err:   fmt.Errorf("duplicate of accounts[%d]", first),
			})
			continue
		}
		seen[key] = i
	}

	return stdErrors.Join(errs...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return rest
}
