// Package impl contains the application-specific business rules implementations.
package impl

import (
	"strings"
	"time"

	domainerrors "fuelflow/internal/domain/errors"

	"github.com/pkg/errors"
)

// clock returns the current time; tests replace it.
type clock func() time.Time

// notFound maps a repository sentinel to the domain 404.
func notFound(err, sentinel error, what string) error {
	if errors.Is(err, sentinel) {
		return errors.Wrap(domainerrors.ErrNotFound.WithDetails(what+" not found"), what)
	}

	return err
}

// withSupportCode re-labels a store failure with the code of the calling operation.
func withSupportCode(err error, code int) error {
	var storeErr *domainerrors.StoreError
	if errors.As(err, &storeErr) {
		return domainerrors.NewStoreError(storeErr.Unwrap(), code)
	}

	return err
}

// validationError lists the missing or invalid fields of a request.
func validationError(fields []string) error {
	return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, ", ")))
}
