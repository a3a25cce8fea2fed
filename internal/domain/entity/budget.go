package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetLimit is a spending ceiling for one expense category in one calendar month.
// The spent figure is never stored; it is always derived from transactions.
type BudgetLimit struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Month      Month
	Limit      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// NewBudgetLimit creates a new BudgetLimit entity.
func NewBudgetLimit(userID, categoryID uuid.UUID, month Month, limit decimal.Decimal) *BudgetLimit {
	now := time.Now().UTC()

	return &BudgetLimit{
		ID:         uuid.New(),
		UserID:     userID,
		CategoryID: categoryID,
		Month:      month,
		Limit:      limit,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
