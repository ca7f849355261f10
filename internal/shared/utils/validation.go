package utils

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/orris-inc/subhub/internal/shared/errors"
)

var (
	validate *validator.Validate

	customMu       sync.RWMutex
	customMessages = map[string]string{}
)

func init() {
	validate = validator.New()
	useJSONNames(validate)
}

// useJSONNames makes v report fields by their json name.
func useJSONNames(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// RegisterValidation adds a custom tag to ValidateStruct and to gin's
// binding validator. message is a format string taking the field name.
func RegisterValidation(tag string, fn validator.Func, message string) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register validation %q: %w", tag, err)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register binding validation %q: %w", tag, err)
		}
	}

	customMu.Lock()
	customMessages[tag] = message
	customMu.Unlock()
	return nil
}

// RegisterBindingValidators makes gin's binding validator report json
// field names, matching ValidateStruct.
func RegisterBindingValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		useJSONNames(v)
	}
}

// ValidateStruct validates a struct and returns a user-friendly error
func ValidateStruct(s interface{}) error {
	return ValidationError(validate.Struct(s))
}

// ValidationError turns a validator or binding error into a validation
// AppError. Other errors, such as malformed JSON, also become validation errors.
func ValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError("Invalid request body", err.Error())
	}

	var errorMessages []string
	for _, fieldError := range validationErrors {
		errorMessages = append(errorMessages, getFieldErrorMessage(fieldError))
	}

	return errors.NewValidationError(
		"Validation failed",
		strings.Join(errorMessages, "; "),
	)
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", field, param)
	case "alphanum":
		return fmt.Sprintf("%s must contain only alphanumeric characters", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		customMu.RLock()
		message, ok := customMessages[fe.Tag()]
		customMu.RUnlock()
		if ok {
			return fmt.Sprintf(message, field)
		}
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// ValidateID validates that an ID string is not empty
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewValidationError("ID cannot be empty")
	}
	return nil
}
