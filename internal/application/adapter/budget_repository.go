package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget limit persistence operations.
type BudgetRepository interface {
	// Create creates a new budget limit in the database.
	Create(ctx context.Context, budget *entity.BudgetLimit) error

	// FindByID retrieves a budget limit by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BudgetLimit, error)

	// FindByUserAndMonth retrieves every budget limit a user set for a month.
	FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month entity.Month) ([]*entity.BudgetLimit, error)

	// ExistsByUserCategoryMonth checks if a limit already exists for the category and month.
	ExistsByUserCategoryMonth(ctx context.Context, userID, categoryID uuid.UUID, month entity.Month) (bool, error)

	// Update updates an existing budget limit in the database.
	Update(ctx context.Context, budget *entity.BudgetLimit) error

	// Delete soft-deletes a budget limit.
	Delete(ctx context.Context, id uuid.UUID) error
}
