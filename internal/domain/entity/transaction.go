// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a transaction. Every transaction
// belongs to exactly one of the two aggregation buckets.
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a single income or expense record owned by a user.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal // Always non-negative; Type carries the direction
	Type        TransactionType
	CategoryID  *uuid.UUID // Optional, can be uncategorized

	// Cached copy of the category display metadata at write time.
	CategoryName  *string
	CategoryIcon  *string
	CategoryColor *string

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	description string,
	amount decimal.Decimal,
	transactionType TransactionType,
	categoryID *uuid.UUID,
	notes string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        transactionType,
		CategoryID:  categoryID,
		Notes:       notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AttachCategory links the transaction to a category and caches its display metadata.
// Passing nil clears both the link and the cached copy.
func (t *Transaction) AttachCategory(category *Category) {
	if category == nil {
		t.CategoryID = nil
		t.CategoryName = nil
		t.CategoryIcon = nil
		t.CategoryColor = nil
		return
	}

	id := category.ID
	name := category.Name
	icon := category.Icon
	color := category.Color

	t.CategoryID = &id
	t.CategoryName = &name
	t.CategoryIcon = &icon
	t.CategoryColor = &color
}

// TransactionListResult represents a page of transactions.
type TransactionListResult struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}
