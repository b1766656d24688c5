// Package validation collects field-level input checks into a single error.
package validation

import (
	"fmt"
	"regexp"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool { return emailRegex.MatchString(s) }

// IsPhone reports whether s looks like an international phone number.
func IsPhone(s string) bool { return phoneRegex.MatchString(s) }

// ValidationError names the offending field so handlers can surface it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator accumulates failed checks in the order they were run.
type Validator struct {
	Errors []ValidationError
}

func New() *Validator {
	return &Validator{}
}

// Valid reports whether every check so far passed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// Check records a ValidationError for field when ok is false.
func (v *Validator) Check(ok bool, field, message string) {
	if ok {
		return
	}
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message})
}
