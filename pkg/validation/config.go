package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
)

// ConfigValidator provides a fluent interface for validating configuration values.
// It collects all validation errors rather than failing on the first one.
type ConfigValidator struct {
	errors []error
	name   string // config struct name for error messages
}

// NewConfigValidator creates a new config validator with the given config name.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{
		name:   configName,
		errors: make([]error, 0),
	}
}

func (cv *ConfigValidator) fail(field, format string, args ...any) *ConfigValidator {
	cv.errors = append(cv.errors, fmt.Errorf("%s.%s: "+format, append([]any{cv.name, field}, args...)...))
	return cv
}

// Required validates that a string field is not empty.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if value == "" {
		return cv.fail(field, "required field is empty")
	}
	return cv
}

// RequiredList validates that a list field has at least one entry.
func (cv *ConfigValidator) RequiredList(field string, values []string) *ConfigValidator {
	if len(values) == 0 {
		return cv.fail(field, "at least one entry is required")
	}
	return cv
}

// NonNegative validates that an int field is non-negative (>= 0).
func (cv *ConfigValidator) NonNegative(field string, value int) *ConfigValidator {
	if value < 0 {
		return cv.fail(field, "value %d must be non-negative", value)
	}
	return cv
}

// Zero validates that an int field is left unset.
func (cv *ConfigValidator) Zero(field string, value int, reason string) *ConfigValidator {
	if value != 0 {
		return cv.fail(field, "must not be set %s", reason)
	}
	return cv
}

// OneOf validates that a string field is one of the allowed values.
func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	for _, a := range allowed {
		if value == a {
			return cv
		}
	}
	return cv.fail(field, "value %q must be one of %v", value, allowed)
}

// Pattern validates that a string field compiles as a regular expression.
func (cv *ConfigValidator) Pattern(field, value string) *ConfigValidator {
	if value == "" {
		return cv
	}
	if _, err := regexp.Compile(value); err != nil {
		return cv.fail(field, "invalid pattern: %v", err)
	}
	return cv
}

// Exclusive validates that at most one of the named fields is set.
func (cv *ConfigValidator) Exclusive(fields map[string]string) *ConfigValidator {
	var set []string
	for field, value := range fields {
		if value != "" {
			set = append(set, field)
		}
	}
	if len(set) > 1 {
		sort.Strings(set)
		return cv.fail(set[0], "cannot be combined with %v", set[1:])
	}
	return cv
}

// TermIDs validates every entry of a list of term IDs.
func (cv *ConfigValidator) TermIDs(field string, ids []string) *ConfigValidator {
	for i, id := range ids {
		if err := ValidateTermID(id); err != nil {
			cv.fail(fmt.Sprintf("%s[%d]", field, i), "%v", err)
		}
	}
	return cv
}

// Custom applies a custom validation function.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.errors = append(cv.errors, fmt.Errorf("%s.%s: %w", cv.name, field, err))
	}
	return cv
}

// When conditionally applies validations if the condition is true.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// HasErrors returns true if any validation errors occurred.
func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Errors returns all validation errors.
func (cv *ConfigValidator) Errors() []error {
	return cv.errors
}

// Validate returns a combined error if any validations failed.
func (cv *ConfigValidator) Validate() error {
	if len(cv.errors) == 0 {
		return nil
	}
	if len(cv.errors) == 1 {
		return cv.errors[0]
	}
	return fmt.Errorf("%s validation failed with %d errors: %w", cv.name, len(cv.errors), errors.Join(cv.errors...))
}

// DefaultOr returns the value if it's non-zero, otherwise returns the default.
func DefaultOr[T comparable](value, defaultValue T) T {
	var zero T
	if value == zero {
		return defaultValue
	}
	return value
}
