package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	OwnerID      uuid.UUID
	CategoryType *entity.CategoryType // Optional filter by category type
	DateRange    *entity.DateRange    // Optional range for usage statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category with its usage in the requested range.
type CategoryOutput struct {
	Category         *entity.Category
	TransactionCount int
	PeriodTotal      decimal.Decimal
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var categories []*entity.Category
	var err error

	if input.CategoryType != nil {
		categories, err = uc.categoryRepo.FindByOwnerAndType(ctx, input.OwnerID, *input.CategoryType)
	} else {
		categories, err = uc.categoryRepo.FindByOwner(ctx, input.OwnerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	stats := map[uuid.UUID]aggregation.CategoryReportRow{}
	if input.DateRange != nil && len(categories) > 0 {
		stats, err = uc.usage(ctx, input.OwnerID, *input.DateRange)
		if err != nil {
			return nil, err
		}
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, 0, len(categories)),
	}
	for _, category := range categories {
		row := stats[category.ID]
		item := &CategoryOutput{
			Category:         category,
			TransactionCount: row.TransactionCount,
			PeriodTotal:      decimal.Zero,
		}
		if row.TransactionCount > 0 {
			item.PeriodTotal = row.TotalAmount
		}
		output.Categories = append(output.Categories, item)
	}

	return output, nil
}

// usage indexes the income and expense breakdown of the range by category.
func (uc *ListCategoriesUseCase) usage(
	ctx context.Context,
	userID uuid.UUID,
	dateRange entity.DateRange,
) (map[uuid.UUID]aggregation.CategoryReportRow, error) {
	transactions, err := uc.transactionRepo.FindByUser(ctx, userID, &dateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	stats := make(map[uuid.UUID]aggregation.CategoryReportRow)
	for _, kind := range []entity.TransactionType{entity.TransactionTypeExpense, entity.TransactionTypeIncome} {
		for _, row := range aggregation.CategoryBreakdown(transactions, kind, nil) {
			stats[row.CategoryID] = row
		}
	}

	return stats, nil
}
