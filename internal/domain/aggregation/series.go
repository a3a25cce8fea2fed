package aggregation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthLabel formats a month for charts, e.g. "Jan 2025".
func MonthLabel(m entity.Month) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[m.Month], m.Year)
}

// MonthlyPoint holds one month of income and expense.
type MonthlyPoint struct {
	Month   string // YYYY-MM
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// MonthlySeries buckets transactions by calendar month. Only months that have
// at least one transaction appear, in ascending order.
func MonthlySeries(transactions []*entity.Transaction) []MonthlyPoint {
	buckets := bucketByMonth(transactions)

	months := make([]entity.Month, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	points := make([]MonthlyPoint, 0, len(months))
	for _, m := range months {
		points = append(points, buckets[m].point(m))
	}
	return points
}

// MonthlySeriesBetween is like MonthlySeries but emits every month from from to
// to inclusive, with zeros for months without transactions. Transactions outside
// the window are ignored.
func MonthlySeriesBetween(transactions []*entity.Transaction, from, to entity.Month) []MonthlyPoint {
	buckets := bucketByMonth(transactions)

	points := make([]MonthlyPoint, 0)
	for m := from; !to.Before(m); m = m.Add(1) {
		totals, ok := buckets[m]
		if !ok {
			totals = monthTotals{income: decimal.Zero, expense: decimal.Zero}
		}
		points = append(points, totals.point(m))
	}
	return points
}

type monthTotals struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

func (t monthTotals) point(m entity.Month) MonthlyPoint {
	return MonthlyPoint{
		Month:   m.String(),
		Label:   MonthLabel(m),
		Income:  t.income,
		Expense: t.expense,
		Balance: t.income.Sub(t.expense),
	}
}

func bucketByMonth(transactions []*entity.Transaction) map[entity.Month]monthTotals {
	buckets := make(map[entity.Month]monthTotals)

	for _, tx := range transactions {
		m := entity.MonthOf(tx.Date)
		totals, ok := buckets[m]
		if !ok {
			totals = monthTotals{income: decimal.Zero, expense: decimal.Zero}
		}

		switch tx.Type {
		case entity.TransactionTypeIncome:
			totals.income = totals.income.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			totals.expense = totals.expense.Add(tx.Amount)
		}
		buckets[m] = totals
	}

	return buckets
}
