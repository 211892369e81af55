package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/yx043749/beaver-farm/internal/model"
)

// usernameForbidden lists characters that may not appear in a username.
// Usernames double as file names in the file store.
const usernameForbidden = `/\:*?"<>|`

var (
	once     sync.Once
	validate *validator.Validate
)

// Error is a validation failure with per-field messages
type Error struct {
	Fields map[string]string
}

// Error implements error interface
func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Unwrap lets callers match on model.ErrValidation
func (e *Error) Unwrap() error {
	return model.ErrValidation
}

// NewError creates a validation error for a single field
func NewError(field, message string) error {
	return &Error{Fields: map[string]string{field: message}}
}

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names rather than Go struct field names
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("username", validateUsername)

		validate = v
	})
	return validate
}

// Struct validates a struct using its `validate` tags
func Struct(s any) error {
	return format(get().Struct(s))
}

// Var validates a single value against a tag string
func Var(field string, value any, tag string) error {
	err := get().Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return NewError(field, describe(validationErrors[0]))
	}
	return err
}

// format converts validator errors into an *Error with user-friendly messages
func format(err error) error {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		fields[e.Field()] = describe(e)
	}
	return &Error{Fields: fields}
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("must be at most %s", e.Param())
	case "required_if":
		return "is required"
	case "username":
		return "contains invalid characters"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "dive":
		return "contains an invalid entry"
	default:
		return "is invalid"
	}
}

func validateUsername(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, usernameForbidden)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
