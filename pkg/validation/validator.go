// Package validation wraps go-playground/validator and translates its
// failures into the field-level reports the API returns as 400 bodies.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openmerch/shopcore/pkg/errors"
)

// Validator validates request payloads using struct tags
type Validator struct {
	validate *validator.Validate
}

// New creates a new validator instance. Field names in reports come from
// the json tag so they match what the caller sent.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates a struct and returns an Invalid error carrying one
// FieldError per failing field, or nil when the payload conforms.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Invalid.Explain("invalid payload").Wrap(err)
	}

	fields := make([]errors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.NewFieldError(fe.Tag(), fe.Field(), message(fe)))
	}
	return errors.Invalid.Explain("request validation failed").WithFields(fields)
}

// message renders a human readable reason for a single tag failure.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// Report flattens field errors into the field → messages mapping used in
// HTTP responses.
func Report(fields []errors.FieldError) map[string][]string {
	report := make(map[string][]string, len(fields))
	for _, f := range fields {
		report[f.Field] = append(report[f.Field], f.Message)
	}
	return report
}
