package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// MaxTermIDLength bounds a single term ID.
	MaxTermIDLength = 128

	// termIDPattern matches prefixed OBO IDs such as FF:0000001 or
	// FF:10001-101A1.
	termIDPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*:\S+$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("termid", func(fl validator.FieldLevel) bool {
		return ValidateTermID(fl.Field().String()) == nil
	})
}

// ValidateStruct checks the `validate` struct tags of v.
func ValidateStruct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// ValidateTermID validates a prefixed term ID
func ValidateTermID(id string) error {
	if id == "" {
		return errors.New("term ID cannot be empty")
	}
	if len(id) > MaxTermIDLength {
		return fmt.Errorf("term ID '%s' exceeds maximum length of %d characters", id, MaxTermIDLength)
	}
	if !termIDPattern.MatchString(id) {
		return fmt.Errorf("term ID '%s' is invalid (expected PREFIX:LOCAL_ID)", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := fieldPath(e.Namespace())
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s], got %q", field, param, fmt.Sprint(e.Value()))
		case "termid":
			return fmt.Errorf("%s: %q is not a valid term ID", field, fmt.Sprint(e.Value()))
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
