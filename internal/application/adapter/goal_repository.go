package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/domain/entity"
)

// ContributionFunc computes the new state of a goal and the ledger entry to record
// from the goal as currently stored. Returning an error aborts without writing.
type ContributionFunc func(goal *entity.Goal) (*entity.Goal, *entity.GoalContribution, error)

// GoalMutation edits a goal in place. Returning an error aborts without writing.
type GoalMutation func(goal *entity.Goal) error

// GoalRepository defines the interface for goal persistence operations.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUser retrieves a user's goals, optionally filtered by status.
	FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error)

	// Modify loads the goal under a row lock, passes it to mutate and saves every
	// field except the current amount, which only AddContribution writes.
	Modify(ctx context.Context, goalID uuid.UUID, mutate GoalMutation) (*entity.Goal, error)

	// Delete soft-deletes a goal together with its contributions.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddContribution loads the goal under a row lock, passes it to apply and
	// persists both results in the same database transaction.
	AddContribution(ctx context.Context, goalID uuid.UUID, apply ContributionFunc) (*entity.Goal, *entity.GoalContribution, error)

	// ListContributions retrieves a goal's contributions, newest first.
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error)
}

// GoalLocker serializes work on a single goal across concurrent requests.
type GoalLocker interface {
	// Lock blocks until the goal's lock is held or ctx is done, and returns the release function.
	Lock(ctx context.Context, goalID uuid.UUID) (func(), error)
}
