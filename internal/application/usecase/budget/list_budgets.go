package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
	Month  string // YYYY-MM; empty means the current month
}

// BudgetOutput pairs a budget's utilization with its category metadata.
type BudgetOutput struct {
	Item          aggregation.BudgetItem
	CategoryName  string
	CategoryIcon  string
	CategoryColor string
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Month   string
	Budgets []*BudgetOutput
	Summary aggregation.BudgetSummary
}

// ListBudgetsUseCase computes the utilization of every budget of a month.
type ListBudgetsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	month := entity.MonthOf(uc.clock.Now())
	if input.Month != "" {
		parsed, err := parseMonth(input.Month)
		if err != nil {
			return nil, err
		}
		month = parsed
	}

	var (
		limits       []*entity.BudgetLimit
		transactions []*entity.Transaction
		categories   []*entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		limits, err = uc.budgetRepo.FindByUserAndMonth(gctx, input.UserID, month)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		transactions, err = uc.transactionRepo.FindByUser(gctx, input.UserID, &entity.DateRange{
			Start: month.Start(),
			End:   month.End(),
		})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindByOwnerAndType(gctx, input.UserID, entity.CategoryTypeExpense)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lookup := aggregation.NewCategoryLookup(categories)
	budgets := make([]*BudgetOutput, 0, len(limits))
	items := make([]aggregation.BudgetItem, 0, len(limits))

	for _, limit := range limits {
		item := aggregation.BudgetProgress(limit, transactions, month)
		items = append(items, item)

		out := &BudgetOutput{Item: item, CategoryName: aggregation.UnknownCategoryName}
		if category, ok := lookup[limit.CategoryID]; ok {
			out.CategoryName = category.Name
			out.CategoryIcon = category.Icon
			out.CategoryColor = category.Color
		}
		budgets = append(budgets, out)
	}

	return &ListBudgetsOutput{
		Month:   month.String(),
		Budgets: budgets,
		Summary: aggregation.SummarizeBudgets(items),
	}, nil
}
