package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalContribution is one deposit in a goal's contribution ledger.
type GoalContribution struct {
	ID        uuid.UUID
	GoalID    uuid.UUID
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// NewGoalContribution creates a new GoalContribution entity.
func NewGoalContribution(goalID uuid.UUID, amount decimal.Decimal, date time.Time, note string) *GoalContribution {
	return &GoalContribution{
		ID:        uuid.New(),
		GoalID:    goalID,
		Amount:    amount,
		Date:      date,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
}
