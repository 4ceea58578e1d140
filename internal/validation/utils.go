package validation

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/deppfellow/recipe-portal/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Bind failure messages. Echo's own messages carry decoder internals
// (offsets, Go types), so clients get one of these instead.
const (
	MsgInvalidPayload      = "Invalid request payload"
	MsgUnsupportedMedia    = "Unsupported content type"
	MsgValidationFailed    = "Validation failed"
	requiredFieldErrorText = "is required"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field problem that validator tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return MsgValidationFailed
}

// BindAndValidate binds path, query and body data into payload and
// validates it. Both failures are 400s raised before any handler work.
//
// payload must be a pointer.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors, ok := extractValidationErrors(err)
		if !ok {
			return errs.ValidationError(err)
		}
		return errs.NewBadRequestError(MsgValidationFailed, true, nil, fieldErrors)
	}

	return nil
}

func bindError(err error) *errs.HTTPError {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) && echoErr.Code == http.StatusUnsupportedMediaType {
		code := errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnsupportedMediaType))
		return errs.NewBadRequestError(MsgUnsupportedMedia, false, &code, nil)
	}

	return errs.NewBadRequestError(MsgInvalidPayload, false, nil, nil)
}

// extractValidationErrors reports false when err carries no field detail.
func extractValidationErrors(err error) ([]errs.FieldError, bool) {
	var fieldErrors []errs.FieldError

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		for _, e := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
		})
	}

	return fieldErrors, true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return requiredFieldErrorText

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "url":
		return "must be a valid URL"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
		}
		return fe.Tag()
	}
}
