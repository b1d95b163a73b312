package diag

import (
	"errors"
)

// Diagnosable is implemented by pipeline errors that know how to describe
// themselves as a diagnostic.
type Diagnosable interface {
	error
	Diagnostic() Diagnostic
}

// FromError converts err into a diagnostic. Errors that do not implement
// Diagnosable anywhere in their chain become UnknownCode errors without a span.
func FromError(err error) (Diagnostic, bool) {
	if err == nil {
		return Diagnostic{}, false
	}
	var d Diagnosable
	if errors.As(err, &d) {
		return d.Diagnostic(), true
	}
	return Diagnostic{Severity: SevError, Code: UnknownCode, Message: err.Error()}, false
}
