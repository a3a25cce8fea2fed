package aggregation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/organized-life/backend/internal/domain/entity"
)

func TestBudgetProgressStatus(t *testing.T) {
	month := entity.Month{Year: 2025, Month: time.January}

	tests := []struct {
		name   string
		limit  string
		spent  string
		status BudgetStatus
	}{
		{name: "over budget", limit: "100", spent: "150", status: BudgetStatusOverBudget},
		{name: "warning", limit: "100", spent: "85", status: BudgetStatusWarning},
		{name: "on track", limit: "100", spent: "50", status: BudgetStatusOnTrack},
		{name: "exactly at limit is warning", limit: "100", spent: "100", status: BudgetStatusWarning},
		{name: "exactly at threshold is warning", limit: "100", spent: "80", status: BudgetStatusWarning},
		{name: "nothing spent", limit: "100", spent: "0", status: BudgetStatusOnTrack},
		{name: "zero limit nothing spent", limit: "0", spent: "0", status: BudgetStatusOnTrack},
		{name: "zero limit with spending", limit: "0", spent: "1", status: BudgetStatusOverBudget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			categoryID := uuid.New()
			limit := &entity.BudgetLimit{ID: uuid.New(), CategoryID: categoryID, Month: month, Limit: dec(tt.limit)}
			txs := []*entity.Transaction{expense(tt.spent, day(2025, 1, 10), &categoryID)}

			item := BudgetProgress(limit, txs, month)

			assert.Equal(t, tt.status, item.Status)
			assert.True(t, item.Spent.Equal(dec(tt.spent)))
			assert.True(t, item.Remaining.Equal(dec(tt.limit).Sub(dec(tt.spent))))
		})
	}
}

func TestBudgetProgressOnlyCountsMatchingExpensesInMonth(t *testing.T) {
	month := entity.Month{Year: 2025, Month: time.February}
	categoryID := uuid.New()
	other := uuid.New()
	limit := &entity.BudgetLimit{ID: uuid.New(), CategoryID: categoryID, Month: month, Limit: dec("200")}

	refund := income("70", day(2025, 2, 5))
	refund.CategoryID = &categoryID

	txs := []*entity.Transaction{
		expense("40", day(2025, 2, 1), &categoryID),
		expense("10", time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC), &categoryID),
		expense("500", day(2025, 3, 1), &categoryID),
		expense("500", day(2025, 1, 31), &categoryID),
		expense("99", day(2025, 2, 10), &other),
		expense("99", day(2025, 2, 10), nil),
		refund,
	}

	item := BudgetProgress(limit, txs, month)

	assert.True(t, item.Spent.Equal(dec("50")))
	assert.True(t, item.Remaining.Equal(dec("150")))
	assert.Equal(t, 25.0, item.PercentageUsed)
	assert.Equal(t, "2025-02", item.Month)
	assert.Equal(t, BudgetStatusOnTrack, item.Status)
}

func TestSummarizeBudgets(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		summary := SummarizeBudgets(nil)

		assert.True(t, summary.TotalBudget.IsZero())
		assert.True(t, summary.Remaining.IsZero())
		assert.Equal(t, 0.0, summary.PercentageUsed)
		assert.Equal(t, 0, summary.OverBudgetCount)
	})

	t.Run("totals and over budget count", func(t *testing.T) {
		items := []BudgetItem{
			{Limit: dec("100"), Spent: dec("150")},
			{Limit: dec("300"), Spent: dec("50")},
			{Limit: dec("100"), Spent: dec("100")},
		}

		summary := SummarizeBudgets(items)

		assert.True(t, summary.TotalBudget.Equal(dec("500")))
		assert.True(t, summary.TotalSpent.Equal(dec("300")))
		assert.True(t, summary.Remaining.Equal(dec("200")))
		assert.Equal(t, 60.0, summary.PercentageUsed)
		assert.Equal(t, 1, summary.OverBudgetCount)
		assert.Equal(t, 3, summary.CategoriesCount)
	})
}
