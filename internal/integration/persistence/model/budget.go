package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
// A live row is unique per (user, category, month); soft-deleted rows do not count.
type BudgetModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_user_month;uniqueIndex:idx_budgets_user_category_month,where:deleted_at IS NULL"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_budgets_user_category_month,where:deleted_at IS NULL"`
	Month      string          `gorm:"type:varchar(7);not null;index:idx_budgets_user_month;uniqueIndex:idx_budgets_user_category_month,where:deleted_at IS NULL"` // YYYY-MM
	Limit      decimal.Decimal `gorm:"column:limit_amount;type:decimal(15,2);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain BudgetLimit entity.
// A malformed month column yields the zero Month.
func (m *BudgetModel) ToEntity() *entity.BudgetLimit {
	month, _ := entity.ParseMonth(m.Month)

	return &entity.BudgetLimit{
		ID:         m.ID,
		UserID:     m.UserID,
		CategoryID: m.CategoryID,
		Month:      month,
		Limit:      m.Limit,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAtPtr(m.DeletedAt),
	}
}

// BudgetFromEntity creates a BudgetModel from a domain BudgetLimit entity.
func BudgetFromEntity(budget *entity.BudgetLimit) *BudgetModel {
	return &BudgetModel{
		ID:         budget.ID,
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Month:      budget.Month.String(),
		Limit:      budget.Limit,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
		DeletedAt:  gormDeletedAt(budget.DeletedAt),
	}
}
