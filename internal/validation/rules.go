// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	apperrors "github.com/allisson/school/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// personNameRegex accepts letters (including Latin-1 accented characters) and spaces
	personNameRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÿ\s]+$`)
)

// WrapValidationError tags a validation failure as ErrInvalidInput while
// keeping the per-field errors reachable via errors.As.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
}

// FieldErrors extracts the field name to message map from a wrapped
// validation failure. Returns nil when err does not carry field errors.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !apperrors.As(err, &verrs) {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		fields[field] = ferr.Error()
	}
	return fields
}

// PasswordStrength validates password meets minimum security requirements
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError(
			"validation_password_min_length",
			"password must be at least "+strconv.Itoa(p.MinLength)+" characters",
		)
	}

	if p.RequireUpper && !hasUpperCase(s) {
		return validation.NewError(
			"validation_password_uppercase",
			"password must contain at least one uppercase letter",
		)
	}

	if p.RequireLower && !hasLowerCase(s) {
		return validation.NewError(
			"validation_password_lowercase",
			"password must contain at least one lowercase letter",
		)
	}

	if p.RequireNumber && !hasNumber(s) {
		return validation.NewError("validation_password_number", "password must contain at least one number")
	}

	if p.RequireSpecial && !hasSpecialChar(s) {
		return validation.NewError(
			"validation_password_special",
			"password must contain at least one special character",
		)
	}

	return nil
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasLowerCase checks if string contains lowercase letters
func hasLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// hasSpecialChar checks if string contains special characters
func hasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// PersonName validates that a name contains only letters and spaces
var PersonName = validation.NewStringRuleWithError(
	func(s string) bool {
		return personNameRegex.MatchString(s)
	},
	validation.NewError("validation_person_name", "must contain only letters and spaces"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// CPF validates a Brazilian individual taxpayer registry number: exactly 11
// digits, not a repeated-digit sequence, and the two trailing check digits
// must match the weighted-sum algorithm.
var CPF = validation.NewStringRuleWithError(
	IsValidCPF,
	validation.NewError("validation_cpf", "must be a valid CPF"),
)

// IsValidCPF reports whether the given string is a structurally valid CPF.
// Formatted inputs like "529.982.247-25" are rejected: the value must be the
// raw 11-digit form, which is also how it is stored and compared for
// uniqueness.
func IsValidCPF(cpf string) bool {
	digits := make([]int, 0, 11)
	for _, r := range cpf {
		if !unicode.IsDigit(r) {
			return false
		}
		digits = append(digits, int(r-'0'))
	}

	if len(digits) != 11 {
		return false
	}

	// Sequences like "00000000000" or "11111111111" satisfy the check-digit
	// formula but are not valid registry numbers.
	repeated := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return false
	}

	return cpfCheckDigit(digits, 9) == digits[9] && cpfCheckDigit(digits, 10) == digits[10]
}

// cpfCheckDigit computes the check digit over the first n digits using
// weights n+1 down to 2: digit = 0 if sum%11 < 2, else 11 - sum%11.
func cpfCheckDigit(digits []int, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += digits[i] * (n + 1 - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return 0
	}
	return 11 - remainder
}

// UUID validates that a string parses as a UUID
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid uuid"),
)

// NotFutureDate validates that a time.Time value is not in the future.
var NotFutureDate = validation.By(func(value interface{}) error {
	t, ok := value.(time.Time)
	if !ok {
		return validation.NewError("validation_date_type", "must be a date")
	}
	if t.IsZero() {
		return nil // Let Required handle zero values
	}
	if t.After(time.Now()) {
		return validation.NewError("validation_date_future", "cannot be in the future")
	}
	return nil
})

// AgeBetween validates that a birth date corresponds to an age strictly
// greater than min and strictly less than max years.
func AgeBetween(min, max int) validation.Rule {
	return validation.By(func(value interface{}) error {
		t, ok := value.(time.Time)
		if !ok {
			return validation.NewError("validation_date_type", "must be a date")
		}
		if t.IsZero() {
			return nil // Let Required handle zero values
		}
		now := time.Now()
		if !t.Before(now.AddDate(-min, 0, 0)) {
			return validation.NewError(
				"validation_age_min",
				"must be at least "+strconv.Itoa(min)+" years old",
			)
		}
		if !t.After(now.AddDate(-max, 0, 0)) {
			return validation.NewError("validation_age_max", "birth date is invalid")
		}
		return nil
	})
}
