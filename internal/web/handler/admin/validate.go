package admin

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")

		return name
	})

	return validate
}

// fieldErrors maps validation failures to a message per form field.
func fieldErrors(validate *validator.Validate, form interface{}) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(form)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = "Invalid form data."

		return errs
	}

	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}

	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return "At most " + fe.Param() + " characters."
	default:
		return "Invalid value."
	}
}
