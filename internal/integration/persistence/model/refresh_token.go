package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel records an issued refresh token so it can be revoked
// before its JWT expiry.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// NewRefreshTokenModel builds a live token row issued at now.
func NewRefreshTokenModel(token string, userID uuid.UUID, expiresAt, now time.Time) *RefreshTokenModel {
	return &RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	}
}
