// Package goal contains savings goal and contribution use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// MaxGoalNameLength is the maximum allowed length for goal names.
const MaxGoalNameLength = 100

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// GoalView is a goal together with the figures derived from it at a point in time.
type GoalView struct {
	Goal          *entity.Goal
	Progress      float64
	Remaining     decimal.Decimal
	DaysRemaining *int
	MonthlyNeeded *decimal.Decimal
}

func newGoalView(goal *entity.Goal, now time.Time) *GoalView {
	return &GoalView{
		Goal:          goal,
		Progress:      aggregation.GoalProgress(goal),
		Remaining:     aggregation.GoalRemaining(goal),
		DaysRemaining: aggregation.DaysRemaining(goal, now),
		MonthlyNeeded: aggregation.MonthlyContributionNeeded(goal, now),
	}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalNameRequired,
			"goal name is required",
			domainerror.ErrGoalNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxGoalNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeGoalNameTooLong,
			fmt.Sprintf("goal name must not exceed %d characters", MaxGoalNameLength),
			domainerror.ErrGoalNameTooLong,
		)
	}
	return name, nil
}

func validateTargetAmount(amount decimal.Decimal) error {
	if !entity.IsValidAmount(amount) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalAmount,
			"target amount must be greater than zero with at most two decimal places",
			domainerror.ErrInvalidAmount,
		)
	}
	return nil
}

func validateType(goalType entity.GoalType) error {
	if !goalType.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			fmt.Sprintf("invalid goal type %q", goalType),
			domainerror.ErrInvalidGoalType,
		)
	}
	return nil
}

func validateStatus(status entity.GoalStatus) error {
	if !status.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalStatus,
			fmt.Sprintf("invalid goal status %q", status),
			domainerror.ErrInvalidGoalStatus,
		)
	}
	return nil
}

func validateColor(color string) error {
	if color != "" && !hexColorRegex.MatchString(color) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalColor,
			"color must be a hex value like #10B981",
			domainerror.ErrInvalidGoalColor,
		)
	}
	return nil
}

// validateTargetDate rejects target dates that are already in the past.
func validateTargetDate(targetDate *time.Time, now time.Time) error {
	if targetDate == nil {
		return nil
	}
	if entity.DateOf(*targetDate).Before(entity.DateOf(now)) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidTargetDate,
			"target date cannot be in the past",
			domainerror.ErrInvalidTargetDate,
		)
	}
	return nil
}

// findOwnedGoal loads a goal. Goals owned by someone else are reported as not found.
func findOwnedGoal(
	ctx context.Context,
	repo adapter.GoalRepository,
	goalID, userID uuid.UUID,
) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, goalNotFound()
	}

	return goal, nil
}

func goalNotFound() *domainerror.GoalError {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}

// lockGoal takes the goal's lock. A lock that cannot be taken in time surfaces as GoalBusy.
func lockGoal(ctx context.Context, locker adapter.GoalLocker, goalID uuid.UUID) (func(), error) {
	release, err := locker.Lock(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalBusy) || errors.Is(err, context.DeadlineExceeded) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalBusy,
				"goal is being updated, try again",
				domainerror.ErrGoalBusy,
			)
		}
		return nil, fmt.Errorf("failed to lock goal: %w", err)
	}
	return release, nil
}
