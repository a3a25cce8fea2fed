package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/usecase/goal"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   string           `json:"description,omitempty" binding:"omitempty,max=500"`
	Type          string           `json:"type,omitempty"`
	TargetAmount  *decimal.Decimal `json:"target_amount" binding:"required"`
	CurrentAmount *decimal.Decimal `json:"current_amount,omitempty"`
	TargetDate    *string          `json:"target_date,omitempty"`
	Icon          string           `json:"icon,omitempty"`
	Color         string           `json:"color,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	Type            *string          `json:"type,omitempty"`
	TargetAmount    *decimal.Decimal `json:"target_amount,omitempty"`
	TargetDate      *string          `json:"target_date,omitempty"`
	ClearTargetDate bool             `json:"clear_target_date,omitempty"`
	Status          *string          `json:"status,omitempty"`
	Icon            *string          `json:"icon,omitempty"`
	Color           *string          `json:"color,omitempty"`
}

// AddContributionRequest represents the request body for adding money to a goal.
type AddContributionRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required"`
	Date   *string          `json:"date,omitempty"`
	Note   string           `json:"note,omitempty"`
}

// GoalResponse represents a single goal with its derived progress.
type GoalResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Remaining     float64   `json:"remaining"`
	Progress      float64   `json:"progress"`
	TargetDate    *string   `json:"target_date,omitempty"`
	DaysRemaining *int      `json:"days_remaining,omitempty"`
	MonthlyNeeded *float64  `json:"monthly_needed,omitempty"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// GoalSummaryResponse represents totals across a user's goals.
type GoalSummaryResponse struct {
	TotalGoals         int     `json:"total_goals"`
	ActiveGoals        int     `json:"active_goals"`
	CompletedGoals     int     `json:"completed_goals"`
	TotalTargetAmount  float64 `json:"total_target_amount"`
	TotalCurrentAmount float64 `json:"total_current_amount"`
	TotalRemaining     float64 `json:"total_remaining"`
	OverallProgress    float64 `json:"overall_progress"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals   []GoalResponse      `json:"goals"`
	Summary GoalSummaryResponse `json:"summary"`
}

// ContributionResponse represents one ledger entry of a goal.
type ContributionResponse struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// ContributionListResponse represents the response for listing contributions.
type ContributionListResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
}

// AddContributionResponse represents the result of a contribution.
type AddContributionResponse struct {
	Goal         GoalResponse         `json:"goal"`
	Contribution ContributionResponse `json:"contribution"`
	Completed    bool                 `json:"completed"`
}

// ToGoalResponse converts a GoalView to a GoalResponse DTO.
func ToGoalResponse(view *goal.GoalView) GoalResponse {
	g := view.Goal
	return GoalResponse{
		ID:            g.ID.String(),
		Name:          g.Name,
		Description:   g.Description,
		Type:          string(g.Type),
		Status:        string(g.Status),
		TargetAmount:  Money(g.TargetAmount),
		CurrentAmount: Money(g.CurrentAmount),
		Remaining:     Money(view.Remaining),
		Progress:      view.Progress,
		TargetDate:    datePtr(g.TargetDate),
		DaysRemaining: view.DaysRemaining,
		MonthlyNeeded: moneyPtr(view.MonthlyNeeded),
		Icon:          g.Icon,
		Color:         g.Color,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// ToGoalSummaryResponse converts an engine goal summary to its DTO.
func ToGoalSummaryResponse(s aggregation.GoalSummary) GoalSummaryResponse {
	return GoalSummaryResponse{
		TotalGoals:         s.TotalGoals,
		ActiveGoals:        s.ActiveGoals,
		CompletedGoals:     s.CompletedGoals,
		TotalTargetAmount:  Money(s.TotalTargetAmount),
		TotalCurrentAmount: Money(s.TotalCurrentAmount),
		TotalRemaining:     Money(s.TotalRemaining),
		OverallProgress:    s.OverallProgress,
	}
}

// ToGoalListResponse converts a ListGoalsOutput to GoalListResponse.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, view := range output.Goals {
		goals[i] = ToGoalResponse(view)
	}
	return GoalListResponse{
		Goals:   goals,
		Summary: ToGoalSummaryResponse(output.Summary),
	}
}

// ToContributionResponse converts a ledger entry to its DTO.
func ToContributionResponse(c *entity.GoalContribution) ContributionResponse {
	return ContributionResponse{
		ID:        c.ID.String(),
		GoalID:    c.GoalID.String(),
		Amount:    Money(c.Amount),
		Date:      c.Date.Format(entity.DateLayout),
		Note:      c.Note,
		CreatedAt: c.CreatedAt,
	}
}

// ToContributionListResponse converts a goal's ledger to its DTO.
func ToContributionListResponse(contributions []*entity.GoalContribution) ContributionListResponse {
	items := make([]ContributionResponse, len(contributions))
	for i, c := range contributions {
		items[i] = ToContributionResponse(c)
	}
	return ContributionListResponse{Contributions: items}
}
