package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/errors"
)

// validate backs the grammar-level checks (email syntax). It is stateless
// after init and safe for concurrent use.
var validate = validator.New()

// mobilePhoneRegex matches international dial format: optional leading
// plus, digits only, 7 to 15 of them.
var mobilePhoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// Validator adapts the package to echo's Validator interface so handlers
// can also run struct-tag rules via c.Validate.
type Validator struct{}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if err := validate.Struct(i); err != nil {
		return errors.NewValidationError(err.Error())
	}
	return nil
}

type violations []errors.FieldViolation

func (v *violations) add(field, message string) {
	*v = append(*v, errors.FieldViolation{Field: field, Message: message})
}

func (v violations) err() *errors.ValidationError {
	if len(v) == 0 {
		return nil
	}
	return errors.NewValidationError("Validation failed", v...)
}

// checkName trims the value and verifies it has at least 2 characters.
// label is the human-readable field name used in messages.
func checkName(v *violations, field, label, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, label+" is required")
		return trimmed
	}
	if len(trimmed) < 2 {
		v.add(field, label+" must be at least 2 characters")
	}
	return trimmed
}

// checkEmail trims the value and verifies standard address syntax.
func checkEmail(v *violations, field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, "Email is required")
		return trimmed
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		v.add(field, "Please enter a valid email address")
	}
	return trimmed
}

// checkPassword verifies the minimum length. Whitespace is significant, so
// the value is never trimmed.
func checkPassword(v *violations, field, value string) {
	if value == "" {
		v.add(field, "Password is required")
		return
	}
	if len(value) < 6 {
		v.add(field, "Password must be at least 6 characters")
	}
}

// checkMobilePhone validates the optional phone field. A nil value is
// always accepted.
func checkMobilePhone(v *violations, field string, value *string) {
	if value == nil {
		return
	}
	if !mobilePhoneRegex.MatchString(*value) {
		v.add(field, "Invalid mobile phone format")
	}
}

// checkDeadline enforces the strictly-in-the-future rule relative to the
// validation instant. A nil deadline is always accepted.
func checkDeadline(v *violations, field string, value *time.Time, now time.Time) {
	if value == nil {
		return
	}
	if !value.After(now) {
		v.add(field, "Deadline must be in the future")
	}
}
