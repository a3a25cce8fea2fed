// Package budget contains use cases for monthly category budget limits.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

func validateLimit(limit decimal.Decimal) error {
	if !entity.IsValidAmount(limit) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetLimit,
			"limit must be greater than zero with at most two decimal places",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func parseMonth(value string) (entity.Month, error) {
	month, err := entity.ParseMonth(value)
	if err != nil {
		return entity.Month{}, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetMonth,
			"month must be in YYYY-MM format",
			domainerror.ErrInvalidBudgetMonth,
		)
	}
	return month, nil
}

// findOwnedBudget loads a budget limit. Limits owned by someone else are reported as not found.
func findOwnedBudget(
	ctx context.Context,
	repo adapter.BudgetRepository,
	budgetID, userID uuid.UUID,
) (*entity.BudgetLimit, error) {
	notFound := domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)

	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != userID {
		return nil, notFound
	}

	return budget, nil
}
