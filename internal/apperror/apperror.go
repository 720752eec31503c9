// Package apperror defines the error taxonomy shared by the persistence layer,
// the use cases and the HTTP handlers.
package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrConflict           = errors.New("a user with this username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("please log in to continue")
	ErrForbidden          = errors.New("you do not have permission to do this")
	ErrNotFound           = errors.New("record not found")
	ErrExternalService    = errors.New("external service unavailable")
)

// FieldError is used to indicate an error with a specific input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(flds ...FieldError) error {
	return &ValidationError{Fields: flds}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// FromValidator converts validator.ValidationErrors into a ValidationError.
// Any other error is returned unchanged.
func FromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	flds := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		flds = append(flds, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return &ValidationError{Fields: flds}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "weekday":
		return fe.Field() + " must be a school day (Monday to Friday)"
	case "clock":
		return fe.Field() + " must be a time in HH:MM format"
	case "datetime":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "gtfield":
		return fe.Field() + " must be later than " + fe.Param()
	case "maxbytes":
		return fe.Field() + " must be at most " + fe.Param() + " bytes"
	case "min", "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "max", "lte":
		return fe.Field() + " must be at most " + fe.Param()
	}
	return fe.Field() + " is invalid"
}

// Message returns the text that may be shown to a client. Errors outside the
// taxonomy never leak their detail.
func Message(err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrExternalService):
		return capitalize(rootMessage(err))
	}
	return "Internal server error"
}

func rootMessage(err error) string {
	for _, sentinel := range []error{ErrConflict, ErrInvalidCredentials, ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrExternalService} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
