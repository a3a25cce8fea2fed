package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrInvalidGoalType is returned when the goal type is not one of the known types.
	ErrInvalidGoalType = errors.New("invalid goal type")

	// ErrInvalidGoalStatus is returned when the goal status is not one of the known statuses.
	ErrInvalidGoalStatus = errors.New("invalid goal status")

	// ErrGoalNameRequired is returned when a goal is created without a name.
	ErrGoalNameRequired = errors.New("goal name is required")

	// ErrGoalNameTooLong is returned when the goal name exceeds the maximum length.
	ErrGoalNameTooLong = errors.New("goal name too long")

	// ErrNegativeCurrentAmount is returned when a goal's current amount would be negative.
	ErrNegativeCurrentAmount = errors.New("current amount cannot be negative")

	// ErrInvalidGoalColor is returned when the goal color is not a hex color.
	ErrInvalidGoalColor = errors.New("invalid goal color")

	// ErrInvalidTargetDate is returned when the target date lies in the past.
	ErrInvalidTargetDate = errors.New("target date cannot be in the past")

	// ErrGoalBusy is returned when another contribution to the same goal is still being applied.
	ErrGoalBusy = errors.New("goal is being updated, try again")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalType        GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalAmount      GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoalStatus      GoalErrorCode = "GOL-010004"
	ErrCodeGoalNameRequired       GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeGoalNameTooLong        GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010008"
	ErrCodeInvalidTargetDate      GoalErrorCode = "GOL-010009"
	ErrCodeInvalidGoalColor       GoalErrorCode = "GOL-010010"

	// Contribution errors (02XXXX)
	ErrCodeInvalidContribution GoalErrorCode = "GOL-020001"
	ErrCodeGoalBusy            GoalErrorCode = "GOL-020002"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
