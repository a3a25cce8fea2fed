package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget limit is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the category already has a limit for the month.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this category and month")

	// ErrBudgetCategoryNotFound is returned when the category for a budget is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotExpense is returned when a budget targets an income category.
	ErrBudgetCategoryNotExpense = errors.New("budgets can only be set on expense categories")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")

	// ErrInvalidBudgetMonth is returned when the month is not in YYYY-MM form.
	ErrInvalidBudgetMonth = errors.New("invalid month, expected YYYY-MM")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetAlreadyExists      BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetLimit       BudgetErrorCode = "BUD-010003"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BUD-010004"
	ErrCodeBudgetCategoryNotExpense BudgetErrorCode = "BUD-010005"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BUD-010006"
	ErrCodeInvalidBudgetMonth       BudgetErrorCode = "BUD-010007"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BUD-010008"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
