// Package validation holds the single place where incoming account data is checked.
// Rules are declared as struct tags on the use case input DTOs and evaluated with
// go-playground/validator.
package validation

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/errors"

	"github.com/go-playground/validator/v10"
)

// DefaultMinPasswordLength applies when the password policy is not configured.
const DefaultMinPasswordLength = 6

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator validates DTOs and converts failures into domain validation errors.
type Validator struct {
	validate          *validator.Validate
	minPasswordLength int
}

// New builds a Validator from the password policy in cfg.
func New(cfg *config.Config) *Validator {
	minLength := DefaultMinPasswordLength
	if cfg != nil && cfg.PasswordPolicy != nil && cfg.PasswordPolicy.MinLength > 0 {
		minLength = cfg.PasswordPolicy.MinLength
	}

	return NewWithMinPasswordLength(minLength)
}

// NewWithMinPasswordLength builds a Validator with an explicit minimum password length.
func NewWithMinPasswordLength(minLength int) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so details match what the client sent.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	// Locations are validated as a whole; the custom type func collapses them to their predicate.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		loc, ok := field.Interface().(entity.Location)

		return ok && loc.Valid()
	}, entity.Location{})

	mustRegister(v, "location", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})
	mustRegister(v, "basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()

		return utf8.RuneCountInString(password) >= minLength && len(password) <= MaxPasswordBytes
	})

	return &Validator{validate: v, minPasswordLength: minLength}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "register validation %q", tag))
	}
}

// Struct validates s and returns domainerrors.ErrValidationFailed carrying per-field details.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate input")
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, v.describe(fe))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

func (v *Validator) describe(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "basic_email":
		return field + " must be a valid email address"
	case "password":
		if password, ok := fe.Value().(string); ok && len(password) > MaxPasswordBytes {
			return field + " must be at most " + strconv.Itoa(MaxPasswordBytes) + " bytes long"
		}

		return field + " must be at least " + strconv.Itoa(v.minPasswordLength) + " characters long"
	case "location":
		return field + " must be a non-empty string or an object with latitude and longitude"
	default:
		return field + " is invalid"
	}
}
