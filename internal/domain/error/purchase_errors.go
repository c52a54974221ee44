// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Card purchase domain errors.
var (
	// ErrCardNotFound is returned when a credit card is not found.
	ErrCardNotFound = errors.New("credit card not found")

	// ErrPurchaseNotFound is returned when a card purchase is not found.
	ErrPurchaseNotFound = errors.New("card purchase not found")

	// ErrInvalidInstallmentCount is returned when the installment count is not positive.
	ErrInvalidInstallmentCount = errors.New("installment count must be positive")

	// ErrInvalidPurchaseAmount is returned when the purchase total is invalid.
	ErrInvalidPurchaseAmount = errors.New("invalid purchase amount")

	// ErrInvalidCardDay is returned when a card closing or due day is outside 1..28.
	ErrInvalidCardDay = errors.New("card day must be between 1 and 28")

	// ErrInvalidCardBrand is returned when a card brand is not recognized.
	ErrInvalidCardBrand = errors.New("invalid card brand")
)

// PurchaseErrorCode defines error codes for card purchase errors.
// Format: PUR-XXYYYY where XX is category and YYYY is specific error.
type PurchaseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCardNotFound            PurchaseErrorCode = "PUR-010001"
	ErrCodePurchaseNotFound        PurchaseErrorCode = "PUR-010002"
	ErrCodeInvalidInstallmentCount PurchaseErrorCode = "PUR-010003"
	ErrCodeInvalidPurchaseAmount   PurchaseErrorCode = "PUR-010004"
	ErrCodeInvalidCardDay          PurchaseErrorCode = "PUR-010005"
	ErrCodeInvalidCardBrand        PurchaseErrorCode = "PUR-010006"
)

// PurchaseError represents a card purchase error with code and message.
type PurchaseError struct {
	Code    PurchaseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PurchaseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PurchaseError) Unwrap() error {
	return e.Err
}

// NewPurchaseError creates a new PurchaseError with the given code and message.
func NewPurchaseError(code PurchaseErrorCode, message string, err error) *PurchaseError {
	return &PurchaseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
