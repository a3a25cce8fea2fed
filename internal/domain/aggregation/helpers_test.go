package aggregation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func income(amount string, date time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:     uuid.New(),
		Amount: dec(amount),
		Type:   entity.TransactionTypeIncome,
		Date:   date,
	}
}

func expense(amount string, date time.Time, categoryID *uuid.UUID) *entity.Transaction {
	return &entity.Transaction{
		ID:         uuid.New(),
		Amount:     dec(amount),
		Type:       entity.TransactionTypeExpense,
		Date:       date,
		CategoryID: categoryID,
	}
}

func ptr[T any](v T) *T {
	return &v
}
