// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Household domain errors.
var (
	// ErrHouseholdNotFound is returned when a household is not found.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrNoActiveHousehold is returned when the acting user has no active household.
	ErrNoActiveHousehold = errors.New("user has no active household")

	// ErrNotHouseholdMember is returned when the actor is not an active member of the household.
	ErrNotHouseholdMember = errors.New("user is not an active member of the household")

	// ErrHouseholdFull is returned when the household already has the maximum number of active members.
	ErrHouseholdFull = errors.New("household already has the maximum number of active members")

	// ErrAlreadyInHousehold is returned when the invited user already has an active membership.
	ErrAlreadyInHousehold = errors.New("user already belongs to an active household")

	// ErrMemberNotFound is returned when a household member is not found.
	ErrMemberNotFound = errors.New("household member not found")

	// ErrMissingHouseholdFields is returned when required household fields are empty.
	ErrMissingHouseholdFields = errors.New("missing required household fields")
)

// HouseholdErrorCode defines error codes for household errors.
// Format: HSH-XXYYYY where XX is category and YYYY is specific error.
type HouseholdErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeHouseholdNotFound      HouseholdErrorCode = "HSH-010001"
	ErrCodeNoActiveHousehold      HouseholdErrorCode = "HSH-010002"
	ErrCodeNotHouseholdMember     HouseholdErrorCode = "HSH-010003"
	ErrCodeHouseholdFull          HouseholdErrorCode = "HSH-010004"
	ErrCodeAlreadyInHousehold     HouseholdErrorCode = "HSH-010005"
	ErrCodeMemberNotFound         HouseholdErrorCode = "HSH-010006"
	ErrCodeUserNotFound           HouseholdErrorCode = "HSH-010007"
	ErrCodeMissingHouseholdFields HouseholdErrorCode = "HSH-010008"
)

// HouseholdError represents a household error with code and message.
type HouseholdError struct {
	Code    HouseholdErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HouseholdError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *HouseholdError) Unwrap() error {
	return e.Err
}

// NewHouseholdError creates a new HouseholdError with the given code and message.
func NewHouseholdError(code HouseholdErrorCode, message string, err error) *HouseholdError {
	return &HouseholdError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
