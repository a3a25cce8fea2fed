package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:text"`
	Type          string          `gorm:"type:varchar(20);not null;default:'savings'"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TargetDate    *time.Time      `gorm:"type:date"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active';index"`
	Icon          string          `gorm:"type:varchar(50)"`
	Color         string          `gorm:"type:varchar(7)"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	var targetDate *time.Time
	if m.TargetDate != nil {
		d := entity.DateOf(*m.TargetDate)
		targetDate = &d
	}

	return &entity.Goal{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		Type:          entity.GoalType(m.Type),
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		TargetDate:    targetDate,
		Status:        entity.GoalStatus(m.Status),
		Icon:          m.Icon,
		Color:         m.Color,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAtPtr(m.DeletedAt),
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:            goal.ID,
		UserID:        goal.UserID,
		Name:          goal.Name,
		Description:   goal.Description,
		Type:          string(goal.Type),
		TargetAmount:  goal.TargetAmount,
		CurrentAmount: goal.CurrentAmount,
		TargetDate:    goal.TargetDate,
		Status:        string(goal.Status),
		Icon:          goal.Icon,
		Color:         goal.Color,
		CreatedAt:     goal.CreatedAt,
		UpdatedAt:     goal.UpdatedAt,
		DeletedAt:     gormDeletedAt(goal.DeletedAt),
	}
}

// GoalContributionModel represents the goal_contributions table in the database.
type GoalContributionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date      time.Time       `gorm:"type:date;not null"`
	Note      string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for the GoalContributionModel.
func (GoalContributionModel) TableName() string {
	return "goal_contributions"
}

// ToEntity converts a GoalContributionModel to a domain GoalContribution entity.
func (m *GoalContributionModel) ToEntity() *entity.GoalContribution {
	return &entity.GoalContribution{
		ID:        m.ID,
		GoalID:    m.GoalID,
		Amount:    m.Amount,
		Date:      entity.DateOf(m.Date),
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// GoalContributionFromEntity creates a GoalContributionModel from a domain GoalContribution entity.
func GoalContributionFromEntity(contribution *entity.GoalContribution) *GoalContributionModel {
	return &GoalContributionModel{
		ID:        contribution.ID,
		GoalID:    contribution.GoalID,
		Amount:    contribution.Amount,
		Date:      entity.DateOf(contribution.Date),
		Note:      contribution.Note,
		CreatedAt: contribution.CreatedAt,
	}
}
