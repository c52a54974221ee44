// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrSubcategoryNotFound is returned when a subcategory is not found.
	ErrSubcategoryNotFound = errors.New("subcategory not found")

	// ErrCategoryNameTaken is returned when the household already has a category with the name.
	ErrCategoryNameTaken = errors.New("category name already in use")

	// ErrCategoryNotInHousehold is returned when a category belongs to another household.
	ErrCategoryNotInHousehold = errors.New("category does not belong to household")

	// ErrMissingCategoryName is returned when a category or subcategory name is empty.
	ErrMissingCategoryName = errors.New("category name is required")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNotFound       CategoryErrorCode = "CAT-010001"
	ErrCodeSubcategoryNotFound    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNameTaken      CategoryErrorCode = "CAT-010003"
	ErrCodeCategoryNotInHousehold CategoryErrorCode = "CAT-010004"
	ErrCodeMissingCategoryName    CategoryErrorCode = "CAT-010005"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
