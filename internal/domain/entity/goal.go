package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalType classifies what a savings goal is for.
type GoalType string

const (
	GoalTypeSavings       GoalType = "savings"
	GoalTypeDebtPayment   GoalType = "debt_payment"
	GoalTypeEmergencyFund GoalType = "emergency_fund"
	GoalTypeRetirement    GoalType = "retirement"
	GoalTypeInvestment    GoalType = "investment"
	GoalTypePurchase      GoalType = "purchase"
	GoalTypeOther         GoalType = "other"
)

// goalTypeStyles holds the default icon and color for each goal type.
var goalTypeStyles = map[GoalType]struct {
	Icon  string
	Color string
}{
	GoalTypeSavings:       {Icon: "piggy-bank", Color: "#10B981"},
	GoalTypeDebtPayment:   {Icon: "credit-card", Color: "#EF4444"},
	GoalTypeEmergencyFund: {Icon: "shield", Color: "#F59E0B"},
	GoalTypeRetirement:    {Icon: "sunset", Color: "#8B5CF6"},
	GoalTypeInvestment:    {Icon: "trending-up", Color: "#3B82F6"},
	GoalTypePurchase:      {Icon: "shopping-bag", Color: "#EC4899"},
	GoalTypeOther:         {Icon: "target", Color: "#6B7280"},
}

// IsValid reports whether t is a known goal type.
func (t GoalType) IsValid() bool {
	_, ok := goalTypeStyles[t]
	return ok
}

// DefaultIcon returns the icon used when a goal of this type has none.
func (t GoalType) DefaultIcon() string {
	if style, ok := goalTypeStyles[t]; ok {
		return style.Icon
	}
	return goalTypeStyles[GoalTypeOther].Icon
}

// DefaultColor returns the color used when a goal of this type has none.
func (t GoalType) DefaultColor() string {
	if style, ok := goalTypeStyles[t]; ok {
		return style.Color
	}
	return goalTypeStyles[GoalTypeOther].Color
}

// GoalStatus represents the lifecycle state of a goal.
type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// IsValid reports whether s is a known goal status.
func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused, GoalStatusCancelled:
		return true
	}
	return false
}

// Goal represents a savings target the user contributes towards over time.
// CurrentAmount is the cached running total of the contribution ledger
// plus any initial amount set at creation.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	Description   string
	Type          GoalType
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    *time.Time
	Status        GoalStatus
	Icon          string
	Color         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time // Soft-delete support
}

// NewGoal creates a new active Goal with the type's default icon and color.
func NewGoal(
	userID uuid.UUID,
	name string,
	goalType GoalType,
	targetAmount decimal.Decimal,
	currentAmount decimal.Decimal,
	targetDate *time.Time,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Type:          goalType,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		TargetDate:    targetDate,
		Status:        GoalStatusActive,
		Icon:          goalType.DefaultIcon(),
		Color:         goalType.DefaultColor(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a copy of the goal that shares no pointers with the original.
func (g *Goal) Clone() *Goal {
	clone := *g
	if g.TargetDate != nil {
		targetDate := *g.TargetDate
		clone.TargetDate = &targetDate
	}
	if g.DeletedAt != nil {
		deletedAt := *g.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	return &clone
}
