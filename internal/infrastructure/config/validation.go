package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/spacecolony-go/internal/domain/building"
	"github.com/andrescamacho/spacecolony-go/internal/domain/navigation"
	"github.com/andrescamacho/spacecolony-go/internal/domain/shared"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the colony's custom
// rules. resource, hostkind and placement accept the same spellings the
// domain parsers do; nodeid rejects the ship's reserved id in any case.
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("resource", func(fl validator.FieldLevel) bool {
		_, err := shared.ParseResource(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hostkind", func(fl validator.FieldLevel) bool {
		kind, err := shared.ParseHostKind(fl.Field().String())
		return err == nil && kind.IsNodeKind()
	})
	_ = v.RegisterValidation("nodeid", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		return id != "" && !strings.EqualFold(id, navigation.ShipOwnerID)
	})
	_ = v.RegisterValidation("placement", func(fl validator.FieldLevel) bool {
		_, err := building.ParsePlacement(fl.Field().String())
		return err == nil
	})

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}
