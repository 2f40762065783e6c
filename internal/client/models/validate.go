package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/evently/internal/common"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	return v
}

// messages maps "<json field>.<tag>" to the text shown next to the field.
var messages = map[string]string{
	"name.required":        "Please provide service name",
	"description.required": "Please provide service description",
	"basePrice.gte":        "Price cannot be negative",
	"category.required":    "Please provide service category",
	"category.category":    "Unknown service category",
	"name.min":             "Name must be at least 2 characters",
	"email.required":       "Invalid email address",
	"email.email":          "Invalid email address",
	"phone.min":            "Phone number must be at least 10 digits",
	"password.min":         "Password must be at least 8 characters",
}

// FieldError is a single failed rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors lists failed fields in declaration order.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == common.ErrorValidation
}

// For returns the message for field, or "" when the field passed.
func (v ValidationErrors) For(field string) string {
	for _, fe := range v {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// Only keeps the errors of the given fields.
func (v ValidationErrors) Only(fields ...string) ValidationErrors {
	var out ValidationErrors
	for _, fe := range v {
		for _, f := range fields {
			if fe.Field == f {
				out = append(out, fe)
				break
			}
		}
	}
	return out
}

// Validate checks s against its `validate` tags and returns ValidationErrors
// when any rule fails.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		out = append(out, FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
