package aggregation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

const daysPerMonth = 30

// GoalProgress returns current/target as a percentage. It is not clamped and
// exceeds 100 for overfunded goals.
func GoalProgress(goal *entity.Goal) float64 {
	return percentage(goal.CurrentAmount, goal.TargetAmount)
}

// GoalRemaining returns how much is still missing to reach the target, never below zero.
func GoalRemaining(goal *entity.Goal) decimal.Decimal {
	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DaysRemaining returns the number of calendar days from now to the goal's
// target date, or nil when the goal has none. Overdue goals yield a negative
// count. Time of day is ignored on both sides.
func DaysRemaining(goal *entity.Goal, now time.Time) *int {
	if goal.TargetDate == nil {
		return nil
	}

	days := int(entity.DateOf(*goal.TargetDate).Sub(entity.DateOf(now)).Hours() / 24)
	return &days
}

// MonthlyContributionNeeded estimates the monthly deposit required to reach the
// target by the target date, treating a month as 30 days. It is nil when the
// goal has no target date or the date is today or past.
func MonthlyContributionNeeded(goal *entity.Goal, now time.Time) *decimal.Decimal {
	days := DaysRemaining(goal, now)
	if days == nil || *days <= 0 {
		return nil
	}

	needed := GoalRemaining(goal).Mul(decimal.NewFromInt(daysPerMonth)).Div(decimal.NewFromInt(int64(*days)))
	return &needed
}

// ApplyContribution returns a copy of goal with the contribution added. The goal
// becomes completed once the current amount reaches the target; a completed goal
// stays completed and the amount is never capped. The input goal is not modified.
func ApplyContribution(goal *entity.Goal, contribution *entity.GoalContribution) (*entity.Goal, error) {
	if contribution == nil || !contribution.Amount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}

	updated := goal.Clone()
	updated.CurrentAmount = goal.CurrentAmount.Add(contribution.Amount)
	if updated.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		updated.Status = entity.GoalStatusCompleted
	}

	return updated, nil
}

// GoalSummary aggregates the user's goals. Amounts and progress cover active goals only.
type GoalSummary struct {
	TotalGoals         int
	ActiveGoals        int
	CompletedGoals     int
	TotalTargetAmount  decimal.Decimal
	TotalCurrentAmount decimal.Decimal
	TotalRemaining     decimal.Decimal
	OverallProgress    float64
}

// SummarizeGoals totals the given goals.
func SummarizeGoals(goals []*entity.Goal) GoalSummary {
	summary := GoalSummary{
		TotalGoals:         len(goals),
		TotalTargetAmount:  decimal.Zero,
		TotalCurrentAmount: decimal.Zero,
	}

	for _, g := range goals {
		switch g.Status {
		case entity.GoalStatusActive:
			summary.ActiveGoals++
			summary.TotalTargetAmount = summary.TotalTargetAmount.Add(g.TargetAmount)
			summary.TotalCurrentAmount = summary.TotalCurrentAmount.Add(g.CurrentAmount)
		case entity.GoalStatusCompleted:
			summary.CompletedGoals++
		}
	}

	summary.TotalRemaining = summary.TotalTargetAmount.Sub(summary.TotalCurrentAmount)
	summary.OverallProgress = percentage(summary.TotalCurrentAmount, summary.TotalTargetAmount)

	return summary
}
