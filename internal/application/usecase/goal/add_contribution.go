package goal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// MaxContributionNoteLength is the maximum allowed length for contribution notes.
const MaxContributionNoteLength = 500

// AddContributionInput represents the input for adding money to a goal.
type AddContributionInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
	Amount decimal.Decimal
	Date   *time.Time // Optional, defaults to today
	Note   string
}

// AddContributionOutput represents the output of adding a contribution.
type AddContributionOutput struct {
	Goal         *GoalView
	Contribution *entity.GoalContribution
	Completed    bool // True when this contribution completed the goal
}

// AddContributionUseCase records a contribution and updates the goal's running total.
// Contributions to the same goal are applied one at a time.
type AddContributionUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
	locker   adapter.GoalLocker
	notifier adapter.Notifier
	clock    adapter.Clock
}

// NewAddContributionUseCase creates a new AddContributionUseCase instance.
func NewAddContributionUseCase(
	goalRepo adapter.GoalRepository,
	userRepo adapter.UserRepository,
	locker adapter.GoalLocker,
	notifier adapter.Notifier,
	clock adapter.Clock,
) *AddContributionUseCase {
	return &AddContributionUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
		locker:   locker,
		notifier: notifier,
		clock:    clock,
	}
}

// Execute adds the contribution.
func (uc *AddContributionUseCase) Execute(ctx context.Context, input AddContributionInput) (*AddContributionOutput, error) {
	if !entity.IsValidAmount(input.Amount) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			"contribution amount must be greater than zero with at most two decimal places",
			domainerror.ErrInvalidAmount,
		)
	}

	note := strings.TrimSpace(input.Note)
	if len([]rune(note)) > MaxContributionNoteLength {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidContribution,
			fmt.Sprintf("note must not exceed %d characters", MaxContributionNoteLength),
			nil,
		)
	}

	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	release, err := lockGoal(ctx, uc.locker, input.GoalID)
	if err != nil {
		return nil, err
	}
	defer release()

	now := uc.clock.Now()
	date := entity.DateOf(now)
	if input.Date != nil {
		date = entity.DateOf(*input.Date)
	}

	var wasCompleted bool
	goal, contribution, err := uc.goalRepo.AddContribution(ctx, input.GoalID,
		func(current *entity.Goal) (*entity.Goal, *entity.GoalContribution, error) {
			wasCompleted = current.Status == entity.GoalStatusCompleted

			contribution := entity.NewGoalContribution(current.ID, input.Amount, date, note)
			updated, err := aggregation.ApplyContribution(current, contribution)
			if err != nil {
				return nil, nil, err
			}
			updated.UpdatedAt = now.UTC()

			return updated, contribution, nil
		})
	if err != nil {
		var goalErr *domainerror.GoalError
		if errors.As(err, &goalErr) {
			return nil, err
		}
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to add contribution: %w", err)
	}

	completed := !wasCompleted && goal.Status == entity.GoalStatusCompleted
	if completed {
		slog.InfoContext(ctx, "goal completed",
			"goal_id", goal.ID,
			"user_id", goal.UserID,
			"target_amount", goal.TargetAmount.String(),
		)
		uc.notifyCompleted(ctx, goal)
	}

	return &AddContributionOutput{
		Goal:         newGoalView(goal, now),
		Contribution: contribution,
		Completed:    completed,
	}, nil
}

// notifyCompleted sends the goal-completed notification. Failures are logged only;
// the contribution is already committed.
func (uc *AddContributionUseCase) notifyCompleted(ctx context.Context, goal *entity.Goal) {
	user, err := uc.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.WarnContext(ctx, "failed to load user for goal notification",
			"goal_id", goal.ID,
			"error", err,
		)
		return
	}

	if !user.WantsGoalAlerts() {
		return
	}

	if err := uc.notifier.GoalCompleted(ctx, user, goal); err != nil {
		slog.ErrorContext(ctx, "failed to send goal completed notification",
			"goal_id", goal.ID,
			"user_id", user.ID,
			"error", err,
		)
	}
}
