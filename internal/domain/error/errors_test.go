package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodedErrorsUnwrapToSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "goal contribution with invalid amount",
			err:      NewGoalError(ErrCodeInvalidContribution, "contribution amount must be positive", ErrInvalidAmount),
			sentinel: ErrInvalidAmount,
			message:  "contribution amount must be positive: amount must be greater than zero",
		},
		{
			name:     "budget not found",
			err:      NewBudgetError(ErrCodeBudgetNotFound, "budget not found", ErrBudgetNotFound),
			sentinel: ErrBudgetNotFound,
			message:  "budget not found: budget not found",
		},
		{
			name:     "report without cause",
			err:      NewReportError(ErrCodeInvalidReportPeriod, "invalid period", nil),
			sentinel: nil,
			message:  "invalid period",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			if tt.sentinel != nil {
				assert.True(t, errors.Is(tt.err, tt.sentinel))
			}
		})
	}
}

func TestCodedErrorSurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to add contribution: %w",
		NewGoalError(ErrCodeGoalNotFound, "goal not found", ErrGoalNotFound))

	var goalErr *GoalError
	assert.True(t, errors.As(wrapped, &goalErr))
	assert.Equal(t, ErrCodeGoalNotFound, goalErr.Code)
	assert.True(t, errors.Is(wrapped, ErrGoalNotFound))
}
