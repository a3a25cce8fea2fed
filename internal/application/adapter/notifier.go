package adapter

import (
	"context"

	"github.com/organized-life/backend/internal/domain/entity"
)

// Notifier delivers user-facing notifications about goal milestones.
type Notifier interface {
	// GoalCompleted tells the user that a contribution brought the goal to its target.
	GoalCompleted(ctx context.Context, user *entity.User, goal *entity.Goal) error
}
