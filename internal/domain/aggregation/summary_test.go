package aggregation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/entity"
)

func TestSummarize(t *testing.T) {
	t.Run("empty input yields zero summary", func(t *testing.T) {
		summary := Summarize(nil)

		assert.True(t, summary.TotalIncome.IsZero())
		assert.True(t, summary.TotalExpense.IsZero())
		assert.True(t, summary.Balance.IsZero())
		assert.Equal(t, 0, summary.TransactionCount)
	})

	t.Run("balance is income minus expense", func(t *testing.T) {
		txs := []*entity.Transaction{
			income("100.50", day(2025, 1, 1)),
			expense("200.25", day(2025, 1, 2), nil),
			income("10", day(2025, 2, 1)),
		}

		summary := Summarize(txs)

		assert.True(t, summary.TotalIncome.Equal(dec("110.50")))
		assert.True(t, summary.TotalExpense.Equal(dec("200.25")))
		assert.True(t, summary.Balance.Equal(dec("-89.75")))
		assert.True(t, summary.Balance.Equal(summary.TotalIncome.Sub(summary.TotalExpense)))
		assert.Equal(t, 3, summary.TransactionCount)
	})
}

func TestAggregationScenario(t *testing.T) {
	rent := uuid.New()
	groceries := uuid.New()
	txs := []*entity.Transaction{
		income("5000", day(2025, 1, 5)),
		expense("1200", day(2025, 1, 10), &rent),
		expense("350", day(2025, 1, 15), &groceries),
	}

	summary := Summarize(txs)
	assert.True(t, summary.TotalIncome.Equal(dec("5000")))
	assert.True(t, summary.TotalExpense.Equal(dec("1550")))
	assert.True(t, summary.Balance.Equal(dec("3450")))
	assert.Equal(t, 3, summary.TransactionCount)

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, rent, rows[0].CategoryID)
	assert.InDelta(t, 77.42, rows[0].Percentage, 0.01)
	assert.Equal(t, groceries, rows[1].CategoryID)
	assert.InDelta(t, 22.58, rows[1].Percentage, 0.01)

	series := MonthlySeries(txs)
	require.Len(t, series, 1)
	assert.Equal(t, "2025-01", series[0].Month)
	assert.True(t, series[0].Balance.Equal(dec("3450")))
}

func TestAggregationIsDeterministic(t *testing.T) {
	cat := uuid.New()
	txs := []*entity.Transaction{
		expense("30", day(2025, 3, 1), &cat),
		income("90", day(2025, 2, 1)),
		expense("12.5", day(2025, 2, 20), ptr(uuid.New())),
	}

	assert.Equal(t, Summarize(txs), Summarize(txs))
	assert.Equal(t,
		CategoryBreakdown(txs, entity.TransactionTypeExpense, nil),
		CategoryBreakdown(txs, entity.TransactionTypeExpense, nil))
	assert.Equal(t, MonthlySeries(txs), MonthlySeries(txs))

	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)
	goal := &entity.Goal{TargetAmount: dec("100"), TargetDate: ptr(day(2025, 7, 1))}
	assert.Equal(t, DaysRemaining(goal, now), DaysRemaining(goal, now))
}
