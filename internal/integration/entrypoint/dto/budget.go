package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/usecase/budget"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID string           `json:"category_id" binding:"required,uuid"`
	Month      string           `json:"month" binding:"required"`
	Limit      *decimal.Decimal `json:"limit" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Limit *decimal.Decimal `json:"limit" binding:"required"`
}

// BudgetResponse represents a budget limit and its progress for the month.
type BudgetResponse struct {
	ID             string  `json:"id"`
	CategoryID     string  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	CategoryIcon   string  `json:"category_icon"`
	CategoryColor  string  `json:"category_color"`
	Month          string  `json:"month"`
	Limit          float64 `json:"limit"`
	Spent          float64 `json:"spent"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
	Status         string  `json:"status"`
}

// BudgetLimitResponse represents a budget limit as written.
type BudgetLimitResponse struct {
	ID           string    `json:"id"`
	CategoryID   string    `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Month        string    `json:"month"`
	Limit        float64   `json:"limit"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BudgetSummaryResponse represents the totals across a month's budgets.
type BudgetSummaryResponse struct {
	TotalBudget     float64 `json:"total_budget"`
	TotalSpent      float64 `json:"total_spent"`
	Remaining       float64 `json:"remaining"`
	PercentageUsed  float64 `json:"percentage_used"`
	OverBudgetCount int     `json:"over_budget_count"`
	CategoriesCount int     `json:"categories_count"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Month   string                `json:"month"`
	Budgets []BudgetResponse      `json:"budgets"`
	Summary BudgetSummaryResponse `json:"summary"`
}

// ToBudgetSummaryResponse converts an engine budget summary to its DTO.
func ToBudgetSummaryResponse(s aggregation.BudgetSummary) BudgetSummaryResponse {
	return BudgetSummaryResponse{
		TotalBudget:     Money(s.TotalBudget),
		TotalSpent:      Money(s.TotalSpent),
		Remaining:       Money(s.Remaining),
		PercentageUsed:  s.PercentageUsed,
		OverBudgetCount: s.OverBudgetCount,
		CategoriesCount: s.CategoriesCount,
	}
}

// ToBudgetLimitResponse converts a stored budget limit. Progress is only reported by the list endpoint.
func ToBudgetLimitResponse(b *entity.BudgetLimit, category *entity.Category) BudgetLimitResponse {
	response := BudgetLimitResponse{
		ID:         b.ID.String(),
		CategoryID: b.CategoryID.String(),
		Month:      b.Month.String(),
		Limit:      Money(b.Limit),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
	if category != nil {
		response.CategoryName = category.Name
	}
	return response
}

// ToBudgetListResponse converts a ListBudgetsOutput to BudgetListResponse.
func ToBudgetListResponse(output *budget.ListBudgetsOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		budgets[i] = BudgetResponse{
			ID:             b.Item.BudgetID.String(),
			CategoryID:     b.Item.CategoryID.String(),
			CategoryName:   b.CategoryName,
			CategoryIcon:   b.CategoryIcon,
			CategoryColor:  b.CategoryColor,
			Month:          b.Item.Month,
			Limit:          Money(b.Item.Limit),
			Spent:          Money(b.Item.Spent),
			Remaining:      Money(b.Item.Remaining),
			PercentageUsed: b.Item.PercentageUsed,
			Status:         string(b.Item.Status),
		}
	}

	return BudgetListResponse{
		Month:   output.Month,
		Budgets: budgets,
		Summary: ToBudgetSummaryResponse(output.Summary),
	}
}
