package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError carries the per-field messages so the error handler
// can answer 400 instead of the generic 500.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, "; "))
}

// ValidateRequest validates a request DTO against its struct tags.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid validator.ValidationErrors
		if ok := errorsAs(err, &invalid); ok {
			fields := make([]string, len(invalid))
			for i, f := range invalid {
				fields[i] = fmt.Sprintf("%s is %s", f.Field(), f.Tag())
			}
			return &ValidationError{Fields: fields}
		}
		return err
	}
	return nil
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	if e, ok := err.(validator.ValidationErrors); ok {
		*target = e
		return true
	}
	return false
}
