package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/go-playground/validator/v10"
)

// newValidator builds a validator with the custom rules the config and the
// request boundary share.
func newValidator() *validator.Validate {
	validate := validator.New()

	// Granularity enum; empty is allowed so omitted fields fall back to
	// defaults.
	_ = validate.RegisterValidation("granularity", func(fl validator.FieldLevel) bool {
		value := strings.ToLower(fl.Field().String())
		if value == "" {
			return true
		}
		return differ.Granularity(value).IsValid()
	})

	return validate
}

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := newValidator()

	if err := validate.Struct(cfg); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				msg := fmt.Sprintf("Validation failed for '%s': rule '%s'", e.StructNamespace(), e.Tag())
				if e.Param() != "" {
					msg += fmt.Sprintf(" (expected: %s)", e.Param())
				}
				if e.Value() != nil && e.Value() != "" {
					msg += fmt.Sprintf(", actual: '%v'", e.Value())
				}
				messages = append(messages, msg)
			}
			return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
		}
		return fmt.Errorf("configuration validation error: %w", err)
	}
	return nil
}

// RequestValidator validates request-level values at the transport
// boundary; the engine itself assumes option domains hold.
func RequestValidator() *validator.Validate {
	return newValidator()
}

// DiffOptions converts the configured defaults into engine options.
func (c DiffConfig) DiffOptions() differ.Options {
	opts := differ.DefaultOptions()
	if c.Granularity != "" {
		if g, err := differ.ParseGranularity(strings.ToLower(c.Granularity)); err == nil {
			opts.Granularity = g
		}
	}
	opts.IgnoreWhitespace = c.IgnoreWhitespace
	opts.IgnoreCase = c.IgnoreCase
	opts.SemanticAnalysis = c.SemanticAnalysis
	if c.SimilarityThreshold > 0 {
		opts.SimilarityThreshold = c.SimilarityThreshold
	}
	return opts
}
