// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user of the OrganizedLife system.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	Currency           string
	EmailNotifications bool
	GoalAlerts         bool
	TermsAcceptedAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultCurrency is assigned to new users.
const DefaultCurrency = "USD"

// NewUser creates a new User with default preferences.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		Currency:           DefaultCurrency,
		EmailNotifications: true,
		GoalAlerts:         true,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// WantsGoalAlerts reports whether goal notifications may be emailed to the user.
func (u *User) WantsGoalAlerts() bool {
	return u.EmailNotifications && u.GoalAlerts
}
