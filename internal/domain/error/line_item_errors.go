// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Line item domain errors.
var (
	// ErrLineItemNotFound is returned when a line item is not found.
	ErrLineItemNotFound = errors.New("line item not found")

	// ErrLineItemAlreadySettled is returned when editing a line item in a terminal state.
	ErrLineItemAlreadySettled = errors.New("line item already settled")

	// ErrLineItemCancelled is returned when an operation targets a cancelled line item.
	ErrLineItemCancelled = errors.New("line item is cancelled")

	// ErrInvalidLineItemAmount is returned when the line item amount is invalid.
	ErrInvalidLineItemAmount = errors.New("invalid line item amount")

	// ErrInvalidBillingPeriod is returned when the billing period cannot be parsed.
	ErrInvalidBillingPeriod = errors.New("invalid billing period")

	// ErrNotAuthorizedForLineItem is returned when the actor does not belong to the
	// line item's household.
	ErrNotAuthorizedForLineItem = errors.New("not authorized to access line item")
)

// LineItemErrorCode defines error codes for line item errors.
// Format: LIN-XXYYYY where XX is category and YYYY is specific error.
type LineItemErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeLineItemNotFound       LineItemErrorCode = "LIN-010001"
	ErrCodeLineItemAlreadySettled LineItemErrorCode = "LIN-010002"
	ErrCodeLineItemCancelled      LineItemErrorCode = "LIN-010003"
	ErrCodeInvalidLineItemAmount  LineItemErrorCode = "LIN-010004"
	ErrCodeInvalidBillingPeriod   LineItemErrorCode = "LIN-010005"
	ErrCodeNotAuthorizedLineItem  LineItemErrorCode = "LIN-010006"
)

// LineItemError represents a line item error with code and message.
type LineItemError struct {
	Code    LineItemErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LineItemError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LineItemError) Unwrap() error {
	return e.Err
}

// NewLineItemError creates a new LineItemError with the given code and message.
func NewLineItemError(code LineItemErrorCode, message string, err error) *LineItemError {
	return &LineItemError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
