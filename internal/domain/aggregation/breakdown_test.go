package aggregation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/entity"
)

func TestCategoryBreakdownEmpty(t *testing.T) {
	rows := CategoryBreakdown(nil, entity.TransactionTypeExpense, nil)

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestCategoryBreakdownSkipsOtherKindAndUncategorized(t *testing.T) {
	cat := uuid.New()
	txs := []*entity.Transaction{
		expense("40", day(2025, 1, 1), &cat),
		expense("60", day(2025, 1, 2), nil),
		income("500", day(2025, 1, 3)),
	}

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, nil)

	require.Len(t, rows, 1)
	assert.True(t, rows[0].TotalAmount.Equal(dec("40")))
	assert.Equal(t, 1, rows[0].TransactionCount)
	assert.Equal(t, 100.0, rows[0].Percentage)
}

func TestCategoryBreakdownPercentagesSumToHundred(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	txs := []*entity.Transaction{
		expense("10", day(2025, 1, 1), &a),
		expense("10", day(2025, 1, 1), &b),
		expense("10", day(2025, 1, 1), &c),
		expense("3.33", day(2025, 1, 2), &a),
	}

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, nil)

	sum := 0.0
	for _, row := range rows {
		sum += row.Percentage
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestCategoryBreakdownZeroTotals(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	txs := []*entity.Transaction{
		expense("0", day(2025, 1, 1), &a),
		expense("0", day(2025, 1, 1), &b),
	}

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, nil)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, 0.0, row.Percentage)
	}
}

func TestCategoryBreakdownStableOrderOnTies(t *testing.T) {
	first, second, biggest := uuid.New(), uuid.New(), uuid.New()
	txs := []*entity.Transaction{
		expense("25", day(2025, 1, 1), &first),
		expense("25", day(2025, 1, 2), &second),
		expense("80", day(2025, 1, 3), &biggest),
	}

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, nil)

	require.Len(t, rows, 3)
	assert.Equal(t, biggest, rows[0].CategoryID)
	assert.Equal(t, first, rows[1].CategoryID)
	assert.Equal(t, second, rows[2].CategoryID)
}

func TestCategoryBreakdownMetadataFallback(t *testing.T) {
	cached, looked, missing := uuid.New(), uuid.New(), uuid.New()

	withCache := expense("30", day(2025, 1, 1), &cached)
	withCache.CategoryName = ptr("Rent")
	withCache.CategoryIcon = ptr("home")
	withCache.CategoryColor = ptr("#111111")

	lookup := NewCategoryLookup([]*entity.Category{
		{ID: cached, Name: "Stale name", Icon: "x", Color: "#000000"},
		{ID: looked, Name: "Food", Icon: "utensils", Color: "#22C55E"},
	})

	txs := []*entity.Transaction{
		withCache,
		expense("20", day(2025, 1, 2), &looked),
		expense("10", day(2025, 1, 3), &missing),
	}

	rows := CategoryBreakdown(txs, entity.TransactionTypeExpense, lookup)

	require.Len(t, rows, 3)
	assert.Equal(t, "Rent", rows[0].CategoryName)
	assert.Equal(t, "home", rows[0].CategoryIcon)
	assert.Equal(t, "#111111", rows[0].CategoryColor)

	assert.Equal(t, "Food", rows[1].CategoryName)
	assert.Equal(t, "utensils", rows[1].CategoryIcon)

	assert.Equal(t, UnknownCategoryName, rows[2].CategoryName)
	assert.Empty(t, rows[2].CategoryIcon)
	assert.Empty(t, rows[2].CategoryColor)
}
