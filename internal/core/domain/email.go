package domain

import (
	"regexp"
	"strings"
)

// emailPattern requires exactly one local part, one domain part and at
// least one dot after the '@', with no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is a validated, canonically lower-cased email address.
// Equality compares the canonical form, so differently-cased inputs
// denoting the same address compare equal.
type Email struct {
	value string
}

// NewEmail validates a raw email string and canonicalizes it.
func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, ErrEmptyEmail
	}

	if !emailPattern.MatchString(raw) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: strings.ToLower(raw)}, nil
}

// String returns the canonical (lower-cased) value.
func (e Email) String() string {
	return e.value
}

// Equal reports whether two emails have the same canonical value.
func (e Email) Equal(other Email) bool {
	return e.value == other.value
}

// IsZero reports whether the Email is the zero value.
func (e Email) IsZero() bool {
	return e.value == ""
}

// restoreEmail rebuilds an Email from trusted storage without
// re-running validation.
func restoreEmail(value string) Email {
	return Email{value: value}
}
