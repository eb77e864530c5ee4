package errors

import (
	"fmt"
	"net/http"

	"fuelflow/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError with the same business error code, so values
// derived through WithDetails still match their predefined origin.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)

	return ok && t.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Validation errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrUnitsMismatch = NewBaseError(
		http.StatusBadRequest,
		"UNITS_MISMATCH",
		"Total units mismatch",
		"",
	)

	ErrInvalidDate = NewBaseError(
		http.StatusBadRequest,
		"INVALID_DATE",
		"Date must be DD/MM/YYYY",
		"",
	)

	ErrSameCustomer = NewBaseError(
		http.StatusBadRequest,
		"SAME_CUSTOMER",
		"Source and target customer must differ",
		"",
	)

	// Prompt errors
	ErrConfirmationRequired = NewBaseError(
		http.StatusConflict,
		"CONFIRMATION_REQUIRED",
		"Confirmation required",
		"",
	)

	// Reference errors
	ErrCustomerInUse = NewBaseError(
		http.StatusConflict,
		"CUSTOMER_IN_USE",
		"Customer has transactions and cannot be deleted",
		"",
	)

	ErrDeliveryPersonInUse = NewBaseError(
		http.StatusConflict,
		"DELIVERY_PERSON_IN_USE",
		"Delivery person has transactions and cannot be deleted",
		"",
	)

	// Access errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	ErrAdminNotVerified = NewBaseError(
		http.StatusForbidden,
		"ADMIN_NOT_VERIFIED",
		"Profile not verified or blocked",
		"",
	)

	ErrInvalidAccessKey = NewBaseError(
		http.StatusForbidden,
		"INVALID_ACCESS_KEY",
		"Access key does not match",
		"",
	)

	// Feature errors
	ErrChatUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"CHAT_UNAVAILABLE",
		"Chat agent is not configured",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong, please contact IT support",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// Support codes shown to users when a store operation fails.
const (
	CodeSaveEntry            = 102
	CodeDeleteEntry          = 103
	CodeRead                 = 104
	CodeDeleteCustomer       = 107
	CodeDeleteDeliveryPerson = 108
	CodeMissingEntry         = 109
	CodeSaveCustomer         = 110
	CodeSaveDeliveryPerson   = 111
	CodeAddress              = 112
	CodeSaveProduct          = 113
	CodeDeleteProduct        = 114
	CodeSaveDeposit          = 116
	CodeDeleteDeposit        = 117
	CodeCustomerStatus       = 119
	CodeCustomerStatusRead   = 120
	CodeSaveTag              = 122
	CodeDeleteTag            = 123
	CodeAdmin                = 125
	CodeAttendance           = 126
	CodeMoveHistory          = 127
)

// StoreError represents a failed document store operation, implementing the AppError interface
type StoreError struct {
	err         error
	supportCode int
}

// NewStoreError wraps a store failure with the support code of the operation
func NewStoreError(err error, supportCode int) *StoreError {
	return &StoreError{
		err:         err,
		supportCode: supportCode,
	}
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return errors.Wrapf(e.err, "store operation failed (support code %d)", e.supportCode).Error()
}

// Unwrap returns the underlying store error
func (e *StoreError) Unwrap() error {
	return e.err
}

// SupportCode returns the numeric code users quote to IT support
func (e *StoreError) SupportCode() int {
	return e.supportCode
}

// HTTPCode returns the HTTP status code
func (e *StoreError) HTTPCode() int {
	return http.StatusBadGateway
}

// ErrorCode returns the business error code
func (e *StoreError) ErrorCode() string {
	return "STORE_FAILURE"
}

// Message returns the user-friendly error message
func (e *StoreError) Message() string {
	return fmt.Sprintf("Something went wrong, please contact IT support. Code: %d", e.supportCode)
}

// Details returns detailed error information
func (e *StoreError) Details() string {
	return fmt.Sprintf("support code %d", e.supportCode)
}
