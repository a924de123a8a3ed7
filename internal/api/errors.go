package api

import "net/http"

// Standard error categories.
const (
	CategoryValidationError = "VALIDATION_ERROR"
	CategoryNotFound        = "NOT_FOUND"
	CategoryConflict        = "CONFLICT"
	CategoryInternalError   = "INTERNAL_ERROR"
)

// Error is the error envelope: a false status plus the category and
// correlation ID of the failed request.
type Error struct {
	Status        bool          `json:"status"`
	Message       string        `json:"message"`
	CorrelationID string        `json:"correlationId"`
	Category      string        `json:"category"`
	Errors        []ErrorDetail `json:"errors,omitempty"`
}

// ErrorDetail represents a single error within an Error.
type ErrorDetail struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

// NewNotFoundError creates a 404 error with the NOT_FOUND category.
func NewNotFoundError(message, correlationID string) *Error {
	return &Error{
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryNotFound,
	}
}

// NewValidationError creates a 400 error with the VALIDATION_ERROR category.
func NewValidationError(message, correlationID string, details []ErrorDetail) *Error {
	return &Error{
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryValidationError,
		Errors:        details,
	}
}

// NewConflictError creates a 409 error with the CONFLICT category.
func NewConflictError(message, correlationID string) *Error {
	return &Error{
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryConflict,
	}
}

// NewInternalError creates a 500 error with the INTERNAL_ERROR category.
func NewInternalError(message, correlationID string) *Error {
	return &Error{
		Message:       message,
		CorrelationID: correlationID,
		Category:      CategoryInternalError,
	}
}

// WriteError writes an Error as a JSON response with the given HTTP status code.
func WriteError(w http.ResponseWriter, statusCode int, apiErr *Error) {
	WriteJSON(w, statusCode, apiErr)
}
