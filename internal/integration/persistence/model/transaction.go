package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/organized-life/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Description string          `gorm:"type:varchar(255);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	Notes       string          `gorm:"type:text"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Category display metadata cached at write time
	CategoryName  *string `gorm:"type:varchar(50)"`
	CategoryIcon  *string `gorm:"type:varchar(50)"`
	CategoryColor *string `gorm:"type:varchar(7)"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:            m.ID,
		UserID:        m.UserID,
		Date:          entity.DateOf(m.Date),
		Description:   m.Description,
		Amount:        m.Amount,
		Type:          entity.TransactionType(m.Type),
		CategoryID:    m.CategoryID,
		CategoryName:  m.CategoryName,
		CategoryIcon:  m.CategoryIcon,
		CategoryColor: m.CategoryColor,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		DeletedAt:     deletedAtPtr(m.DeletedAt),
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:            transaction.ID,
		UserID:        transaction.UserID,
		Date:          entity.DateOf(transaction.Date),
		Description:   transaction.Description,
		Amount:        transaction.Amount,
		Type:          string(transaction.Type),
		CategoryID:    transaction.CategoryID,
		CategoryName:  transaction.CategoryName,
		CategoryIcon:  transaction.CategoryIcon,
		CategoryColor: transaction.CategoryColor,
		Notes:         transaction.Notes,
		CreatedAt:     transaction.CreatedAt,
		UpdatedAt:     transaction.UpdatedAt,
		DeletedAt:     gormDeletedAt(transaction.DeletedAt),
	}
}
