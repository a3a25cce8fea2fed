package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget limit in the database.
// A second live limit for the same category and month fails with ErrBudgetAlreadyExists.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.BudgetLimit) error {
	err := r.db.WithContext(ctx).Create(model.BudgetFromEntity(budget)).Error
	if isUniqueViolation(err) {
		return domainerror.ErrBudgetAlreadyExists
	}
	return err
}

// FindByID retrieves a budget limit by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BudgetLimit, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserAndMonth retrieves the user's budget limits for a month, oldest first.
func (r *budgetRepository) FindByUserAndMonth(ctx context.Context, userID uuid.UUID, month entity.Month) ([]*entity.BudgetLimit, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND month = ?", userID, month.String()).
		Order("created_at ASC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.BudgetLimit, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// ExistsByUserCategoryMonth checks if the user already limited the category in the month.
func (r *budgetRepository) ExistsByUserCategoryMonth(ctx context.Context, userID, categoryID uuid.UUID, month entity.Month) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("user_id = ? AND category_id = ? AND month = ?", userID, categoryID, month.String()).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing budget limit in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.BudgetLimit) error {
	return r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget)).Error
}

// Delete soft-deletes a budget limit.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id).Error
}

// isUniqueViolation reports a unique constraint failure. Dialects without an
// error translator surface only the driver message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
