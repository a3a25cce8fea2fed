package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID        uuid.UUID
	Name          string
	Description   string
	Type          entity.GoalType
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Icon          string // Optional, defaults from the goal type
	Color         string // Optional, defaults from the goal type
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *GoalView
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	goalType := input.Type
	if goalType == "" {
		goalType = entity.GoalTypeSavings
	}
	if err := validateType(goalType); err != nil {
		return nil, err
	}

	if err := validateTargetAmount(input.TargetAmount); err != nil {
		return nil, err
	}

	if input.CurrentAmount.IsNegative() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmount,
			"current amount cannot be negative",
			domainerror.ErrNegativeCurrentAmount,
		)
	}
	if !entity.IsWholeCents(input.CurrentAmount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmount,
			"current amount must have at most two decimal places",
			domainerror.ErrInvalidAmount,
		)
	}

	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	if err := validateTargetDate(input.TargetDate, now); err != nil {
		return nil, err
	}

	var targetDate *time.Time
	if input.TargetDate != nil {
		d := entity.DateOf(*input.TargetDate)
		targetDate = &d
	}

	goal := entity.NewGoal(input.UserID, name, goalType, input.TargetAmount, input.CurrentAmount, targetDate)
	goal.Description = strings.TrimSpace(input.Description)
	if input.Icon != "" {
		goal.Icon = input.Icon
	}
	if input.Color != "" {
		goal.Color = input.Color
	}
	if goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
		goal.Status = entity.GoalStatusCompleted
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: newGoalView(goal, now),
	}, nil
}
