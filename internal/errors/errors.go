// Package errors defines the domain error taxonomy. Business-rule failures
// are sentinel *DomainError values with a stable machine code; infrastructure
// faults are wrapped with fmt.Errorf("...: %w", err) at the call site.
package errors

import "errors"

// DomainError is a business-rule failure with a stable kind and a
// human-readable message. Services detect these before any mutation begins.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches two DomainErrors by code so errors.Is works across wrapping.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if errors.As(target, &de) {
		return e.Code == de.Code
	}
	return false
}

// AsDomain unwraps err into a *DomainError if it is one.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	ok := errors.As(err, &de)
	return de, ok
}
