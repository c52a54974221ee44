// Package error defines domain-specific errors for the Shared Expenses application.
package error

import "errors"

// Expense template domain errors.
var (
	// ErrTemplateNotFound is returned when an expense template is not found.
	ErrTemplateNotFound = errors.New("expense template not found")

	// ErrInvalidDueDay is returned when a template's due day is outside 1..31.
	ErrInvalidDueDay = errors.New("due day out of range")

	// ErrInvalidScope is returned when the expense scope is unknown.
	ErrInvalidScope = errors.New("invalid expense scope")

	// ErrOwnerForbidden is returned when a shared-scope expense carries an owner.
	ErrOwnerForbidden = errors.New("shared expense must not have an owner")

	// ErrInvalidSplitRule is returned when a split rule does not match the template policy.
	ErrInvalidSplitRule = errors.New("split rule inconsistent with template policy")

	// ErrRuleMemberNotActive is returned when a split rule names a non-member.
	ErrRuleMemberNotActive = errors.New("split rule member is not an active household member")

	// ErrInvalidPeriodicity is returned when the template periodicity is unknown.
	ErrInvalidPeriodicity = errors.New("invalid periodicity")
)

// TemplateErrorCode defines error codes for template errors.
// Format: TPL-XXYYYY where XX is category and YYYY is specific error.
type TemplateErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTemplateNotFound     TemplateErrorCode = "TPL-010001"
	ErrCodeInvalidDueDay        TemplateErrorCode = "TPL-010002"
	ErrCodeInvalidScope         TemplateErrorCode = "TPL-010003"
	ErrCodeOwnerForbidden       TemplateErrorCode = "TPL-010004"
	ErrCodeInvalidSplitRule     TemplateErrorCode = "TPL-010005"
	ErrCodeRuleMemberNotActive  TemplateErrorCode = "TPL-010006"
	ErrCodeInvalidPeriodicity   TemplateErrorCode = "TPL-010007"
	ErrCodeMissingTemplateOwner TemplateErrorCode = "TPL-010008"
)

// TemplateError represents a template error with code and message.
type TemplateError struct {
	Code    TemplateErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Err
}

// NewTemplateError creates a new TemplateError with the given code and message.
func NewTemplateError(code TemplateErrorCode, message string, err error) *TemplateError {
	return &TemplateError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
