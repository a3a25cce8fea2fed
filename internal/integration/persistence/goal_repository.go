package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return findGoal(r.db.WithContext(ctx), id)
}

func findGoal(db *gorm.DB, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := db.Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUser retrieves the user's goals, oldest first, optionally filtered by status.
func (r *goalRepository) FindByUser(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var goalModels []model.GoalModel
	if err := query.Order("created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// Modify re-reads the goal under a row lock and applies mutate to it.
// current_amount and created_at are never written here.
func (r *goalRepository) Modify(ctx context.Context, goalID uuid.UUID, mutate adapter.GoalMutation) (*entity.Goal, error) {
	var updated *entity.Goal

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findGoal(tx.Clauses(clause.Locking{Strength: "UPDATE"}), goalID)
		if err != nil {
			return err
		}

		if err := mutate(current); err != nil {
			return err
		}

		goalModel := model.GoalFromEntity(current)
		result := tx.Model(goalModel).
			Select("*").
			Omit("ID", "UserID", "CurrentAmount", "CreatedAt", "DeletedAt").
			Updates(goalModel)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrGoalNotFound
		}

		// Reload so the result matches the stored row.
		updated, err = findGoal(tx, goalID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete soft-deletes a goal together with its contributions.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", id).Delete(&model.GoalContributionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.GoalModel{}, "id = ?", id).Error
	})
}

// AddContribution runs apply against the row-locked goal and writes the goal and
// the contribution in one database transaction.
func (r *goalRepository) AddContribution(
	ctx context.Context,
	goalID uuid.UUID,
	apply adapter.ContributionFunc,
) (*entity.Goal, *entity.GoalContribution, error) {
	var (
		updated      *entity.Goal
		contribution *entity.GoalContribution
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findGoal(tx.Clauses(clause.Locking{Strength: "UPDATE"}), goalID)
		if err != nil {
			return err
		}

		updated, contribution, err = apply(current)
		if err != nil {
			return err
		}

		if err := tx.Create(model.GoalContributionFromEntity(contribution)).Error; err != nil {
			return err
		}
		return tx.Save(model.GoalFromEntity(updated)).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return updated, contribution, nil
}

// ListContributions retrieves a goal's contributions, newest first.
func (r *goalRepository) ListContributions(ctx context.Context, goalID uuid.UUID) ([]*entity.GoalContribution, error) {
	var contributionModels []model.GoalContributionModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("date DESC, created_at DESC").
		Find(&contributionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	contributions := make([]*entity.GoalContribution, len(contributionModels))
	for i := range contributionModels {
		contributions[i] = contributionModels[i].ToEntity()
	}
	return contributions, nil
}
