package dto

import (
	"github.com/organized-life/backend/internal/application/usecase/report"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// CategoryRowResponse represents one category's share of income or expense.
type CategoryRowResponse struct {
	CategoryID       string  `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryIcon     string  `json:"category_icon"`
	CategoryColor    string  `json:"category_color"`
	TotalAmount      float64 `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

// MonthlyPointResponse represents one month of the income/expense series.
type MonthlyPointResponse struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// ReportResponse represents the financial report for a period.
type ReportResponse struct {
	Period              string                 `json:"period"`
	StartDate           string                 `json:"start_date"`
	EndDate             string                 `json:"end_date"`
	Summary             SummaryResponse        `json:"summary"`
	AverageDailyIncome  float64                `json:"average_daily_income"`
	AverageDailyExpense float64                `json:"average_daily_expense"`
	SavingsRate         float64                `json:"savings_rate"`
	IncomeByCategory    []CategoryRowResponse  `json:"income_by_category"`
	ExpenseByCategory   []CategoryRowResponse  `json:"expense_by_category"`
	Monthly             []MonthlyPointResponse `json:"monthly"`
	TopIncomeCategory   *CategoryRowResponse   `json:"top_income_category,omitempty"`
	TopExpenseCategory  *CategoryRowResponse   `json:"top_expense_category,omitempty"`
}

// OverviewResponse represents the dashboard overview.
type OverviewResponse struct {
	Month            string                 `json:"month"`
	Summary          SummaryResponse        `json:"summary"`
	ExpenseBreakdown []CategoryRowResponse  `json:"expense_breakdown"`
	Monthly          []MonthlyPointResponse `json:"monthly"`
	Budgets          BudgetSummaryResponse  `json:"budgets"`
	Goals            GoalSummaryResponse    `json:"goals"`
}

func toCategoryRow(row aggregation.CategoryReportRow) CategoryRowResponse {
	return CategoryRowResponse{
		CategoryID:       row.CategoryID.String(),
		CategoryName:     row.CategoryName,
		CategoryIcon:     row.CategoryIcon,
		CategoryColor:    row.CategoryColor,
		TotalAmount:      Money(row.TotalAmount),
		TransactionCount: row.TransactionCount,
		Percentage:       row.Percentage,
	}
}

func toCategoryRows(rows []aggregation.CategoryReportRow) []CategoryRowResponse {
	out := make([]CategoryRowResponse, len(rows))
	for i, row := range rows {
		out[i] = toCategoryRow(row)
	}
	return out
}

func toCategoryRowPtr(row *aggregation.CategoryReportRow) *CategoryRowResponse {
	if row == nil {
		return nil
	}
	r := toCategoryRow(*row)
	return &r
}

func toMonthlyPoints(points []aggregation.MonthlyPoint) []MonthlyPointResponse {
	out := make([]MonthlyPointResponse, len(points))
	for i, p := range points {
		out[i] = MonthlyPointResponse{
			Month:   p.Month,
			Label:   p.Label,
			Income:  Money(p.Income),
			Expense: Money(p.Expense),
			Balance: Money(p.Balance),
		}
	}
	return out
}

// ToReportResponse converts an engine report to its DTO.
func ToReportResponse(r aggregation.Report) ReportResponse {
	return ReportResponse{
		Period:              string(r.Period),
		StartDate:           r.DateRange.Start.Format(entity.DateLayout),
		EndDate:             r.DateRange.End.Format(entity.DateLayout),
		Summary:             ToSummaryResponse(r.Summary),
		AverageDailyIncome:  Money(r.AverageDailyIncome),
		AverageDailyExpense: Money(r.AverageDailyExpense),
		SavingsRate:         r.SavingsRate,
		IncomeByCategory:    toCategoryRows(r.IncomeByCategory),
		ExpenseByCategory:   toCategoryRows(r.ExpenseByCategory),
		Monthly:             toMonthlyPoints(r.Monthly),
		TopIncomeCategory:   toCategoryRowPtr(r.TopIncomeCategory),
		TopExpenseCategory:  toCategoryRowPtr(r.TopExpenseCategory),
	}
}

// ToOverviewResponse converts a GetOverviewOutput to its DTO.
func ToOverviewResponse(output *report.GetOverviewOutput) OverviewResponse {
	return OverviewResponse{
		Month:            output.Month,
		Summary:          ToSummaryResponse(output.MonthSummary),
		ExpenseBreakdown: toCategoryRows(output.ExpenseBreakdown),
		Monthly:          toMonthlyPoints(output.Monthly),
		Budgets:          ToBudgetSummaryResponse(output.Budgets),
		Goals:            ToGoalSummaryResponse(output.Goals),
	}
}
