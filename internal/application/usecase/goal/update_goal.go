package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	GoalID          uuid.UUID
	UserID          uuid.UUID
	Name            *string
	Description     *string
	Type            *entity.GoalType
	TargetAmount    *decimal.Decimal
	TargetDate      *time.Time
	ClearTargetDate bool
	Status          *entity.GoalStatus
	Icon            *string
	Color           *string
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *GoalView
}

// UpdateGoalUseCase handles goal update logic.
// The current amount is only changed through contributions.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	locker   adapter.GoalLocker
	clock    adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, locker adapter.GoalLocker, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		locker:   locker,
		clock:    clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	now := uc.clock.Now()

	var name string
	if input.Name != nil {
		validated, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		name = validated
	}
	if input.Type != nil {
		if err := validateType(*input.Type); err != nil {
			return nil, err
		}
	}
	if input.TargetAmount != nil {
		if err := validateTargetAmount(*input.TargetAmount); err != nil {
			return nil, err
		}
	}
	if input.Status != nil {
		if err := validateStatus(*input.Status); err != nil {
			return nil, err
		}
	}
	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
	}
	if !input.ClearTargetDate {
		if err := validateTargetDate(input.TargetDate, now); err != nil {
			return nil, err
		}
	}

	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	release, err := lockGoal(ctx, uc.locker, input.GoalID)
	if err != nil {
		return nil, err
	}
	defer release()

	goal, err := uc.goalRepo.Modify(ctx, input.GoalID, func(goal *entity.Goal) error {
		applyGoalChanges(goal, input, name)

		// An active goal whose target was lowered to or below the saved amount is reached.
		if goal.Status == entity.GoalStatusActive && goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount) {
			goal.Status = entity.GoalStatusCompleted
		}
		goal.UpdatedAt = now.UTC()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: newGoalView(goal, now),
	}, nil
}

func applyGoalChanges(goal *entity.Goal, input UpdateGoalInput, name string) {
	if input.Name != nil {
		goal.Name = name
	}
	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}
	if input.Type != nil {
		goal.Type = *input.Type
	}
	if input.TargetAmount != nil {
		goal.TargetAmount = *input.TargetAmount
	}
	switch {
	case input.ClearTargetDate:
		goal.TargetDate = nil
	case input.TargetDate != nil:
		d := entity.DateOf(*input.TargetDate)
		goal.TargetDate = &d
	}
	if input.Status != nil {
		goal.Status = *input.Status
	}
	if input.Icon != nil && *input.Icon != "" {
		goal.Icon = *input.Icon
	}
	if input.Color != nil && *input.Color != "" {
		goal.Color = *input.Color
	}
}
