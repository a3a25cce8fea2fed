package aggregation

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

// Report is the income-versus-expense analysis of a date range.
type Report struct {
	Period              ReportPeriod
	DateRange           entity.DateRange
	Summary             TransactionSummary
	AverageDailyIncome  decimal.Decimal
	AverageDailyExpense decimal.Decimal
	SavingsRate         float64
	IncomeByCategory    []CategoryReportRow
	ExpenseByCategory   []CategoryReportRow
	Monthly             []MonthlyPoint
	TopIncomeCategory   *CategoryReportRow
	TopExpenseCategory  *CategoryReportRow
}

// BuildReport restricts transactions to the date range and derives every report figure from them.
func BuildReport(
	transactions []*entity.Transaction,
	lookup CategoryLookup,
	period ReportPeriod,
	dateRange entity.DateRange,
) Report {
	inRange := FilterByDateRange(transactions, dateRange)
	summary := Summarize(inRange)

	days := decimal.NewFromInt(reportDays(dateRange))

	report := Report{
		Period:              period,
		DateRange:           dateRange,
		Summary:             summary,
		AverageDailyIncome:  summary.TotalIncome.Div(days),
		AverageDailyExpense: summary.TotalExpense.Div(days),
		SavingsRate:         percentage(summary.Balance, summary.TotalIncome),
		IncomeByCategory:    CategoryBreakdown(inRange, entity.TransactionTypeIncome, lookup),
		ExpenseByCategory:   CategoryBreakdown(inRange, entity.TransactionTypeExpense, lookup),
		Monthly:             MonthlySeries(inRange),
	}

	if len(report.IncomeByCategory) > 0 {
		top := report.IncomeByCategory[0]
		report.TopIncomeCategory = &top
	}
	if len(report.ExpenseByCategory) > 0 {
		top := report.ExpenseByCategory[0]
		report.TopExpenseCategory = &top
	}

	return report
}

// reportDays is the whole number of days between the range ends, at least 1.
func reportDays(dateRange entity.DateRange) int64 {
	days := int64(math.Ceil(entity.DateOf(dateRange.End).Sub(entity.DateOf(dateRange.Start)).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}
