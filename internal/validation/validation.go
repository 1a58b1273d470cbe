// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/virilis/backend/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Return CustomValidationErrors for rules tags cannot express
type Validatable interface {
	Validate() error
}

// RequiredMessager replaces "Missing required fields" for a request,
// e.g. "Content is required".
type RequiredMessager interface {
	RequiredMessage() string
}

const missingFieldsMessage = "Missing required fields"

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. every path parameter must be an integer id ("Invalid user ID or goal ID")
//  2. c.Bind(payload) fills `param`, `query` and `json` tagged fields
//  3. payload.Validate() applies validation rules
//
// All failures are *errs.HTTPError with status 400.
func BindAndValidate(c echo.Context, payload Validatable) error {
	names := c.ParamNames()
	for _, name := range names {
		if _, err := strconv.ParseInt(c.Param(name), 10, 64); err != nil {
			return errs.NewBadRequestError(invalidParamsMessage(names), true, nil, nil)
		}
	}

	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Invalid request body", true, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		if m, ok := payload.(RequiredMessager); ok && msg == missingFieldsMessage {
			msg = m.RequiredMessage()
		}
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

// extractValidationError turns validator and custom errors into field errors.
// A failure made only of missing fields reads "Missing required fields".
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", nil
	}

	onlyMissing := true
	for _, fe := range validationErrors {
		if fe.Tag() != "required" {
			onlyMissing = false
		}
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
		})
	}

	if onlyMissing {
		return missingFieldsMessage, fieldErrors
	}
	return "Validation failed", fieldErrors
}

// invalidParamsMessage names every id of the route: "Invalid user ID or goal ID".
func invalidParamsMessage(names []string) string {
	labels := make([]string, len(names))
	for i, name := range names {
		labels[i] = paramLabel(name)
	}
	return "Invalid " + strings.Join(labels, " or ")
}
