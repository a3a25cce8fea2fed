// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/domain/entity"
)

// UserPreferenceColumns are the only columns a preferences update may write.
var UserPreferenceColumns = []string{"currency", "email_notifications", "goal_alerts", "updated_at"}

// UserModel is a row of the users table. Emails are stored lower-cased so the
// unique index rejects addresses that differ only by case.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	TermsAcceptedAt time.Time `gorm:"not null"`

	Currency           string `gorm:"type:varchar(3);not null;default:'USD'"`
	EmailNotifications bool   `gorm:"not null;default:true"`
	GoalAlerts         bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// BeforeSave normalizes the email and fills in a missing currency.
func (m *UserModel) BeforeSave(*gorm.DB) error {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if m.Currency == "" {
		m.Currency = entity.DefaultCurrency
	}
	return nil
}

func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		PasswordHash:       m.PasswordHash,
		Currency:           m.Currency,
		EmailNotifications: m.EmailNotifications,
		GoalAlerts:         m.GoalAlerts,
		TermsAcceptedAt:    m.TermsAcceptedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		PasswordHash:       user.PasswordHash,
		TermsAcceptedAt:    user.TermsAcceptedAt,
		Currency:           user.Currency,
		EmailNotifications: user.EmailNotifications,
		GoalAlerts:         user.GoalAlerts,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}
