package report

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// OverviewMonths is the number of months, the current one included, in the overview series.
const OverviewMonths = 6

// GetOverviewInput represents the input for the dashboard overview.
type GetOverviewInput struct {
	UserID uuid.UUID
}

// GetOverviewOutput represents the dashboard overview.
type GetOverviewOutput struct {
	Month            string
	MonthSummary     aggregation.TransactionSummary
	ExpenseBreakdown []aggregation.CategoryReportRow
	Monthly          []aggregation.MonthlyPoint
	Budgets          aggregation.BudgetSummary
	Goals            aggregation.GoalSummary
}

// GetOverviewUseCase assembles the dashboard figures for the current month.
type GetOverviewUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	budgetRepo      adapter.BudgetRepository
	goalRepo        adapter.GoalRepository
	clock           adapter.Clock
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
	clock adapter.Clock,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		goalRepo:        goalRepo,
		clock:           clock,
	}
}

// Execute builds the overview.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	current := entity.MonthOf(uc.clock.Now())
	first := current.Add(-(OverviewMonths - 1))

	var (
		transactions []*entity.Transaction
		categories   []*entity.Category
		limits       []*entity.BudgetLimit
		goals        []*entity.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = uc.transactionRepo.FindByUser(gctx, input.UserID, &entity.DateRange{
			Start: first.Start(),
			End:   current.End(),
		})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindByOwner(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		limits, err = uc.budgetRepo.FindByUserAndMonth(gctx, input.UserID, current)
		if err != nil {
			return fmt.Errorf("failed to load budgets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = uc.goalRepo.FindByUser(gctx, input.UserID, nil)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	thisMonth := aggregation.FilterByDateRange(transactions, entity.DateRange{
		Start: current.Start(),
		End:   current.End(),
	})

	items := make([]aggregation.BudgetItem, 0, len(limits))
	for _, limit := range limits {
		items = append(items, aggregation.BudgetProgress(limit, thisMonth, current))
	}

	return &GetOverviewOutput{
		Month:            current.String(),
		MonthSummary:     aggregation.Summarize(thisMonth),
		ExpenseBreakdown: aggregation.CategoryBreakdown(thisMonth, entity.TransactionTypeExpense, aggregation.NewCategoryLookup(categories)),
		Monthly:          aggregation.MonthlySeriesBetween(transactions, first, current),
		Budgets:          aggregation.SummarizeBudgets(items),
		Goals:            aggregation.SummarizeGoals(goals),
	}, nil
}
