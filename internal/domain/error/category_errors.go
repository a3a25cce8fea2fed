package error

import (
	"errors"
	"fmt"
)

// Sentinels wrapped by CategoryError. Repositories return ErrCategoryNotFound bare.
var (
	ErrCategoryNotFound              = errors.New("category not found")
	ErrCategoryNameRequired          = errors.New("category name is required")
	ErrCategoryNameTooLong           = errors.New("category name too long")
	ErrCategoryNameExists            = errors.New("category name already exists")
	ErrInvalidColorFormat            = errors.New("invalid color format")
	ErrInvalidCategoryType           = errors.New("category type must be expense or income")
	ErrNotAuthorizedToModifyCategory = errors.New("category belongs to another user")
)

// CategoryErrorCode identifies a category failure in API responses (CAT-XXYYYY).
type CategoryErrorCode string

// Rejected input.
const (
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010007"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"
)

// Lookup, ownership and name conflicts.
const (
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
)

// CategoryError pairs a CategoryErrorCode with the sentinel it wraps.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

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

// CategoryMissing is returned for unknown ids. Foreign categories are reported
// by CategoryNotOwned instead.
func CategoryMissing() *CategoryError {
	return NewCategoryError(ErrCodeCategoryNotFound, "category not found", ErrCategoryNotFound)
}

// CategoryNotOwned is returned when action targets another user's category.
func CategoryNotOwned(action string) *CategoryError {
	return NewCategoryError(
		ErrCodeNotAuthorizedCategory,
		fmt.Sprintf("not authorized to %s this category", action),
		ErrNotAuthorizedToModifyCategory,
	)
}

// CategoryNameTaken is returned when the owner already has a category called
// name, compared without case.
func CategoryNameTaken(name string) *CategoryError {
	return NewCategoryError(
		ErrCodeCategoryNameExists,
		fmt.Sprintf("a category named %q already exists", name),
		ErrCategoryNameExists,
	)
}
