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

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      string // YYYY-MM
	Limit      decimal.Decimal
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget   *entity.BudgetLimit
	Category *entity.Category
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, categoryRepo adapter.CategoryRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateLimit(input.Limit); err != nil {
		return nil, err
	}

	month, err := parseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil && !errors.Is(err, domainerror.ErrCategoryNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category == nil || category.OwnerID != input.UserID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}

	if category.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotExpense,
			"budgets can only be set on expense categories",
			domainerror.ErrBudgetCategoryNotExpense,
		)
	}

	exists, err := uc.budgetRepo.ExistsByUserCategoryMonth(ctx, input.UserID, input.CategoryID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget existence: %w", err)
	}
	if exists {
		return nil, budgetAlreadyExists(month)
	}

	budget := entity.NewBudgetLimit(input.UserID, input.CategoryID, month, input.Limit)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		// Lost a race with a concurrent create for the same month.
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, budgetAlreadyExists(month)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget:   budget,
		Category: category,
	}, nil
}

func budgetAlreadyExists(month entity.Month) *domainerror.BudgetError {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetAlreadyExists,
		fmt.Sprintf("a budget already exists for this category in %s", month),
		domainerror.ErrBudgetAlreadyExists,
	)
}
