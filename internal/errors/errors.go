// Package errors combines stdlib error inspection with pkg/errors stack
// traces behind one import.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// AsType is a generic version of As that returns the typed error and a boolean.
func AsType[T error](err error) (T, bool) {
	var target T
	ok := stderrors.As(err, &target)

	return target, ok
}

// Wrap returns an error annotating err with a stack trace and the supplied message.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf returns an error annotating err with a stack trace and the format specifier.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack annotates err with a stack trace at the point WithStack was called.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}
