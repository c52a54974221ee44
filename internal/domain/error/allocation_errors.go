// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Allocation domain errors.
var (
	// ErrInvalidAllocation is returned when a split is requested with a bad total or count.
	ErrInvalidAllocation = errors.New("invalid allocation input")

	// ErrMissingOwner is returned when a personal-scope expense has no owner.
	ErrMissingOwner = errors.New("personal expense requires an owner")

	// ErrNoActiveMembers is returned when a shared expense is split over an empty member set.
	ErrNoActiveMembers = errors.New("household has no active members")

	// ErrUnbalancedAllocation is returned when split rules do not sum to the expected value.
	ErrUnbalancedAllocation = errors.New("split rules do not balance")

	// ErrInvalidPolicy is returned when the split policy is unknown.
	ErrInvalidPolicy = errors.New("invalid split policy")

	// ErrMissingSplitRules is returned when a policy requires rules and none are defined.
	ErrMissingSplitRules = errors.New("split rules not defined for template")
)

// AllocationErrorCode defines error codes for allocation errors.
// Format: ALC-XXYYYY where XX is category and YYYY is specific error.
type AllocationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAllocation    AllocationErrorCode = "ALC-010001"
	ErrCodeMissingOwner         AllocationErrorCode = "ALC-010002"
	ErrCodeNoActiveMembers      AllocationErrorCode = "ALC-010003"
	ErrCodeUnbalancedAllocation AllocationErrorCode = "ALC-010004"
	ErrCodeInvalidPolicy        AllocationErrorCode = "ALC-010005"
	ErrCodeMissingSplitRules    AllocationErrorCode = "ALC-010006"
)

// AllocationError represents an allocation error with code and message.
type AllocationError struct {
	Code    AllocationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AllocationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// NewAllocationError creates a new AllocationError with the given code and message.
func NewAllocationError(code AllocationErrorCode, message string, err error) *AllocationError {
	return &AllocationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
