// Package validate holds the pure input checks applied before any network
// call. Every function is synchronous and side-effect free; callers use the
// same checks both for live form-validity flags and as a pre-flight gate.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrInvalidPassword     = errors.New("password must be at least 6 characters")
	ErrInvalidName         = errors.New("name must be at least 2 characters")
	ErrPasswordsDoNotMatch = errors.New("passwords do not match")
)

// FieldRequiredError reports an empty mandatory field by name.
type FieldRequiredError struct {
	Field string
}

func (e *FieldRequiredError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// IsFieldRequired reports whether err is a FieldRequiredError for field.
func IsFieldRequired(err error, field string) bool {
	var fr *FieldRequiredError
	return errors.As(err, &fr) && fr.Field == field
}

// ASCII local part, dotted domain labels, alphabetic TLD of 2-64 characters.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// Email checks that s is non-empty and shaped like local@domain.tld.
func Email(s string) error {
	if s == "" {
		return &FieldRequiredError{Field: "Email"}
	}
	if !emailPattern.MatchString(s) {
		return ErrInvalidEmail
	}
	return nil
}

// Password checks that s is non-empty and at least 6 characters long.
func Password(s string) error {
	if s == "" {
		return &FieldRequiredError{Field: "Password"}
	}
	if len(s) < 6 {
		return ErrInvalidPassword
	}
	return nil
}

// Name checks that s is non-empty and at least 2 characters after trimming.
// field names the input in the returned error.
func Name(s, field string) error {
	if s == "" {
		return &FieldRequiredError{Field: field}
	}
	if len(strings.TrimSpace(s)) < 2 {
		return ErrInvalidName
	}
	return nil
}

// PasswordConfirmation validates password first, then checks the
// confirmation is present and matches.
func PasswordConfirmation(password, confirmation string) error {
	if err := Password(password); err != nil {
		return err
	}
	if confirmation == "" {
		return &FieldRequiredError{Field: "Password confirmation"}
	}
	if password != confirmation {
		return ErrPasswordsDoNotMatch
	}
	return nil
}
