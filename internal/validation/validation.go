package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error describes the first field that failed validation.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})
		_ = validate.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
		// nonempty rejects "" behind an optional pointer, where omitempty
		// has already let the field through.
		_ = validate.RegisterValidation("nonempty", func(fl validator.FieldLevel) bool {
			return fl.Field().Kind() != reflect.String || fl.Field().Len() > 0
		})
	})
	return validate
}

// Validate checks v against its validate tags and reports the first failing
// field, or nil.
func Validate(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validate: %w", err)
	}

	fe := fieldErrors[0]
	field := fieldPath(fe.Namespace())

	return &Error{Field: field, Message: message(field, fe)}
}

// FromDecodeError turns a JSON type mismatch into a field error. Other decode
// failures are not field specific and return nil.
func FromDecodeError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return nil
	}

	field := typeErr.Field
	return &Error{
		Field:   field,
		Message: fmt.Sprintf("%q must be %s", field, describeKind(typeErr.Type)),
	}
}

func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func message(field string, fe validator.FieldError) string {
	quoted := fmt.Sprintf("%q", field)

	switch fe.Tag() {
	case "required":
		return quoted + " is required"
	case "nonempty":
		return quoted + " is not allowed to be empty"
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be at least %s characters long", quoted, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain at least %s items", quoted, fe.Param())
		default:
			return fmt.Sprintf("%s must be greater than or equal to %s", quoted, fe.Param())
		}
	case "max":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", quoted, fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("%s must contain less than or equal to %s items", quoted, fe.Param())
		default:
			return fmt.Sprintf("%s must be less than or equal to %s", quoted, fe.Param())
		}
	case "len":
		return fmt.Sprintf("%s length must be %s characters long", quoted, fe.Param())
	case "email":
		return quoted + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", quoted, strings.Join(strings.Fields(fe.Param()), ", "))
	case "objectid":
		return quoted + " must be a valid id"
	default:
		return quoted + " is invalid"
	}
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "valid"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
