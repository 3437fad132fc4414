package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"rentcatalog/internal/pkg/slug"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// report json names ("relatedIds") instead of Go field names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
}

// Messages validates v and returns one human readable line per failing
// field, in struct field order. It returns nil when v is valid.
func Messages(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, message(fe))
	}
	return messages
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return field + " is required and must be an array"
		}
		return field + " is required"
	case "notblank":
		return field + " is required and must be a non-empty string"
	case "slug":
		return field + " must contain only lowercase letters, numbers, and hyphens"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", field, fe.Tag())
	}
}
