// Package error defines domain-specific errors for the OrganizedLife application.
package error

import "errors"

// ErrInvalidAmount is returned when a monetary amount that must be positive is zero, negative or finer than a cent.
// It is shared by transactions, budget limits and goal contributions, each of which wraps it
// in its own coded error.
var ErrInvalidAmount = errors.New("amount must be greater than zero")
