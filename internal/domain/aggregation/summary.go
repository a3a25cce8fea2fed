// Package aggregation holds the financial math shared by every read surface:
// totals, category breakdowns, monthly series, budget utilization and goal progress.
//
// Every function is pure. Inputs are never mutated, no clock is read and no I/O
// is performed; callers pass "now" explicitly where a result depends on it.
package aggregation

import (
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// TransactionSummary holds the totals of a set of transactions.
type TransactionSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// Summarize partitions transactions by type and totals each side.
func Summarize(transactions []*entity.Transaction) TransactionSummary {
	income := decimal.Zero
	expense := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return TransactionSummary{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          income.Sub(expense),
		TransactionCount: len(transactions),
	}
}

// percentage returns part/whole*100, or 0 when whole is zero.
func percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(whole).Float64()
	return pct
}
