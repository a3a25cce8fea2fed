package aggregation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

// BudgetStatus classifies how much of a limit has been used.
type BudgetStatus string

const (
	BudgetStatusOverBudget BudgetStatus = "over_budget"
	BudgetStatusWarning    BudgetStatus = "warning"
	BudgetStatusOnTrack    BudgetStatus = "on_track"
)

// BudgetWarningThreshold is the usage percentage at which a budget turns to warning.
const BudgetWarningThreshold = 80.0

// BudgetItem is the utilization of a single budget limit.
type BudgetItem struct {
	BudgetID       uuid.UUID
	CategoryID     uuid.UUID
	Month          string
	Limit          decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal // Negative when over budget
	PercentageUsed float64
	Status         BudgetStatus
}

// BudgetProgress derives the spent amount of a limit from the expense
// transactions of its category that fall within month.
func BudgetProgress(limit *entity.BudgetLimit, transactions []*entity.Transaction, month entity.Month) BudgetItem {
	spent := decimal.Zero
	for _, tx := range transactions {
		if tx.Type != entity.TransactionTypeExpense || tx.CategoryID == nil {
			continue
		}
		if *tx.CategoryID != limit.CategoryID || !month.Contains(tx.Date) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}

	percentageUsed := 0.0
	if limit.Limit.IsPositive() {
		percentageUsed = percentage(spent, limit.Limit)
	}

	return BudgetItem{
		BudgetID:       limit.ID,
		CategoryID:     limit.CategoryID,
		Month:          month.String(),
		Limit:          limit.Limit,
		Spent:          spent,
		Remaining:      limit.Limit.Sub(spent),
		PercentageUsed: percentageUsed,
		Status:         budgetStatus(spent, limit.Limit, percentageUsed),
	}
}

func budgetStatus(spent, limit decimal.Decimal, percentageUsed float64) BudgetStatus {
	switch {
	case spent.GreaterThan(limit):
		return BudgetStatusOverBudget
	case percentageUsed >= BudgetWarningThreshold:
		return BudgetStatusWarning
	default:
		return BudgetStatusOnTrack
	}
}

// BudgetSummary aggregates a set of budget items.
type BudgetSummary struct {
	TotalBudget     decimal.Decimal
	TotalSpent      decimal.Decimal
	Remaining       decimal.Decimal
	PercentageUsed  float64
	OverBudgetCount int
	CategoriesCount int
}

// SummarizeBudgets totals the given items.
func SummarizeBudgets(items []BudgetItem) BudgetSummary {
	summary := BudgetSummary{
		TotalBudget:     decimal.Zero,
		TotalSpent:      decimal.Zero,
		CategoriesCount: len(items),
	}

	for _, item := range items {
		summary.TotalBudget = summary.TotalBudget.Add(item.Limit)
		summary.TotalSpent = summary.TotalSpent.Add(item.Spent)
		if item.Spent.GreaterThan(item.Limit) {
			summary.OverBudgetCount++
		}
	}

	summary.Remaining = summary.TotalBudget.Sub(summary.TotalSpent)
	if summary.TotalBudget.IsPositive() {
		summary.PercentageUsed = percentage(summary.TotalSpent, summary.TotalBudget)
	}

	return summary
}
