package habit

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dukerupert/habitual/internal/model"
)

// Input holds the user-editable fields of a habit.
type Input struct {
	Name      string          `json:"name" validate:"required"`
	Frequency model.Frequency `json:"frequency" validate:"oneof=daily weekly custom"`
	Category  *string         `json:"category"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldMessages = map[string]*ValidationError{
	"Name":      {Field: "name", Message: "name required"},
	"Frequency": {Field: "frequency", Message: "invalid frequency"},
}

// Validate trims and checks in, returning the normalized input.
// A blank category is normalized to nil.
func Validate(in Input) (Input, error) {
	out := Input{
		Name:      strings.TrimSpace(in.Name),
		Frequency: in.Frequency,
	}
	if in.Category != nil {
		if c := strings.TrimSpace(*in.Category); c != "" {
			out.Category = &c
		}
	}

	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			// Fields are reported in declaration order, so name wins over frequency.
			if msg, ok := fieldMessages[fieldErrs[0].StructField()]; ok {
				return Input{}, &ValidationError{Field: msg.Field, Message: msg.Message}
			}
		}
		return Input{}, err
	}
	return out, nil
}
