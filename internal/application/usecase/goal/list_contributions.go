package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
)

// ListContributionsInput represents the input for listing a goal's contributions.
type ListContributionsInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// ListContributionsOutput represents the output of listing a goal's contributions.
type ListContributionsOutput struct {
	Contributions []*entity.GoalContribution
}

// ListContributionsUseCase returns a goal's contribution ledger, newest first.
type ListContributionsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListContributionsUseCase creates a new ListContributionsUseCase instance.
func NewListContributionsUseCase(goalRepo adapter.GoalRepository) *ListContributionsUseCase {
	return &ListContributionsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute lists the contributions.
func (uc *ListContributionsUseCase) Execute(ctx context.Context, input ListContributionsInput) (*ListContributionsOutput, error) {
	if _, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	contributions, err := uc.goalRepo.ListContributions(ctx, input.GoalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}

	return &ListContributionsOutput{
		Contributions: contributions,
	}, nil
}
