package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for summarizing a user's transactions.
type GetSummaryInput struct {
	UserID    uuid.UUID
	DateRange *entity.DateRange // Optional; nil covers all time
}

// GetSummaryOutput represents the totals of the selected transactions.
type GetSummaryOutput struct {
	Summary aggregation.TransactionSummary
}

// GetSummaryUseCase totals income and expense over a date range.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute loads the transactions and summarizes them.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	transactions, err := uc.transactionRepo.FindByUser(ctx, input.UserID, input.DateRange)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &GetSummaryOutput{
		Summary: aggregation.Summarize(transactions),
	}, nil
}
