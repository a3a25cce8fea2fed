package transaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/testutil"
)

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txnErr), "expected TransactionError, got %v", err)
	return txnErr.Code
}

func march(day int) time.Time {
	return time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	userID       uuid.UUID
	food         *entity.Category
	salary       *entity.Category
	foreign      *entity.Category
	categories   *testutil.CategoryRepository
	transactions *testutil.TransactionRepository
}

func newFixture() *fixture {
	userID := uuid.New()
	f := &fixture{
		userID:       userID,
		food:         entity.NewCategory("Food", "#EF4444", "utensils", userID, entity.CategoryTypeExpense),
		salary:       entity.NewCategory("Salary", "#10B981", "briefcase", userID, entity.CategoryTypeIncome),
		foreign:      entity.NewCategory("Theirs", "#000000", "tag", uuid.New(), entity.CategoryTypeExpense),
		transactions: testutil.NewTransactionRepository(),
	}
	f.categories = testutil.NewCategoryRepository(f.food, f.salary, f.foreign)
	return f
}

func TestCreateTransaction(t *testing.T) {
	f := newFixture()
	uc := NewCreateTransactionUseCase(f.transactions, f.categories)

	// A late-evening timestamp with an offset still lands on its own calendar date.
	local := time.Date(2025, time.March, 5, 23, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID:      f.userID,
		Date:        local,
		Description: "  Market ",
		Amount:      amount("42.10"),
		Type:        entity.TransactionTypeExpense,
		CategoryID:  &f.food.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, march(5), out.Transaction.Date)
	assert.Equal(t, "Market", out.Transaction.Description)
	require.NotNil(t, out.Transaction.CategoryName)
	assert.Equal(t, "Food", *out.Transaction.CategoryName)

	stored, err := f.transactions.FindByID(context.Background(), out.Transaction.ID)
	require.NoError(t, err)
	assert.True(t, amount("42.10").Equal(stored.Amount))

	tests := []struct {
		name  string
		input CreateTransactionInput
		code  domainerror.TransactionErrorCode
	}{
		{"missing date", CreateTransactionInput{UserID: f.userID, Amount: amount("1"), Type: entity.TransactionTypeExpense}, domainerror.ErrCodeInvalidTransactionDate},
		{"unknown type", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: "transfer"}, domainerror.ErrCodeInvalidTransactionType},
		{"zero amount", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: decimal.Zero, Type: entity.TransactionTypeExpense}, domainerror.ErrCodeInvalidTransactionAmount},
		{"negative amount", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("-3"), Type: entity.TransactionTypeExpense}, domainerror.ErrCodeInvalidTransactionAmount},
		{"sub-cent amount", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("0.001"), Type: entity.TransactionTypeExpense}, domainerror.ErrCodeInvalidTransactionAmount},
		{"long description", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: entity.TransactionTypeExpense, Description: strings.Repeat("d", MaxDescriptionLength+1)}, domainerror.ErrCodeDescriptionTooLong},
		{"long notes", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: entity.TransactionTypeExpense, Notes: strings.Repeat("n", MaxNotesLength+1)}, domainerror.ErrCodeNotesTooLong},
		{"unknown category", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: entity.TransactionTypeExpense, CategoryID: ptr(uuid.New())}, domainerror.ErrCodeTxnCategoryNotFound},
		{"foreign category", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: entity.TransactionTypeExpense, CategoryID: &f.foreign.ID}, domainerror.ErrCodeTxnCategoryNotOwned},
		{"category type mismatch", CreateTransactionInput{UserID: f.userID, Date: march(1), Amount: amount("1"), Type: entity.TransactionTypeExpense, CategoryID: &f.salary.ID}, domainerror.ErrCodeTxnCategoryTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.code, txnCode(t, err))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestUpdateTransaction(t *testing.T) {
	f := newFixture()
	existing := entity.NewTransaction(f.userID, march(3), "Lunch", amount("15"), entity.TransactionTypeExpense, nil, "")
	existing.AttachCategory(f.food)
	require.NoError(t, f.transactions.Create(context.Background(), existing))
	uc := NewUpdateTransactionUseCase(f.transactions, f.categories)

	t.Run("partial update keeps the category", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			Amount:        ptr(amount("18.75")),
			Notes:         ptr("with tip"),
		})
		require.NoError(t, err)
		assert.True(t, amount("18.75").Equal(out.Transaction.Amount))
		assert.Equal(t, "with tip", out.Transaction.Notes)
		assert.Equal(t, f.food.ID, *out.Transaction.CategoryID)
	})

	t.Run("changing type revalidates the linked category", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			Type:          ptr(entity.TransactionTypeIncome),
		})
		assert.Equal(t, domainerror.ErrCodeTxnCategoryTypeMismatch, txnCode(t, err))

		stored, err := f.transactions.FindByID(context.Background(), existing.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeExpense, stored.Type, "a rejected update leaves the record untouched")
	})

	t.Run("changing type and category together", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			Type:          ptr(entity.TransactionTypeIncome),
			CategoryID:    &f.salary.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, entity.TransactionTypeIncome, out.Transaction.Type)
		assert.Equal(t, "Salary", *out.Transaction.CategoryName)
	})

	t.Run("clear category", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			ClearCategory: true,
		})
		require.NoError(t, err)
		assert.Nil(t, out.Transaction.CategoryID)
		assert.Nil(t, out.Transaction.CategoryName)
	})

	t.Run("invalid amount", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        f.userID,
			Amount:        ptr(decimal.Zero),
		})
		assert.Equal(t, domainerror.ErrCodeInvalidTransactionAmount, txnCode(t, err))
	})

	t.Run("foreign user", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), UpdateTransactionInput{
			TransactionID: existing.ID,
			UserID:        uuid.New(),
			Notes:         ptr("mine now"),
		})
		assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))
	})
}

func TestDeleteTransaction(t *testing.T) {
	f := newFixture()
	existing := entity.NewTransaction(f.userID, march(3), "Lunch", amount("15"), entity.TransactionTypeExpense, nil, "")
	require.NoError(t, f.transactions.Create(context.Background(), existing))
	uc := NewDeleteTransactionUseCase(f.transactions)

	err := uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))

	require.NoError(t, uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: f.userID}))

	err = uc.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: f.userID})
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
}

func TestGetTransaction(t *testing.T) {
	f := newFixture()
	existing := entity.NewTransaction(f.userID, march(3), "Lunch", amount("15.40"), entity.TransactionTypeExpense, nil, "")
	existing.AttachCategory(f.food)
	require.NoError(t, f.transactions.Create(context.Background(), existing))
	uc := NewGetTransactionUseCase(f.transactions)

	out, err := uc.Execute(context.Background(), GetTransactionInput{TransactionID: existing.ID, UserID: f.userID})
	require.NoError(t, err)
	assert.Equal(t, "Lunch", out.Transaction.Description)
	assert.True(t, amount("15.40").Equal(out.Transaction.Amount))
	require.NotNil(t, out.Transaction.CategoryName)
	assert.Equal(t, f.food.Name, *out.Transaction.CategoryName)

	_, err = uc.Execute(context.Background(), GetTransactionInput{TransactionID: existing.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeNotAuthorizedTransaction, txnCode(t, err))

	_, err = uc.Execute(context.Background(), GetTransactionInput{TransactionID: uuid.New(), UserID: f.userID})
	assert.Equal(t, domainerror.ErrCodeTransactionNotFound, txnCode(t, err))
}

func seed(t *testing.T, f *fixture) {
	t.Helper()
	rows := []struct {
		day      int
		desc     string
		value    string
		kind     entity.TransactionType
		category *entity.Category
	}{
		{1, "Paycheck", "3000", entity.TransactionTypeIncome, f.salary},
		{4, "Market", "120.40", entity.TransactionTypeExpense, f.food},
		{9, "Market", "79.60", entity.TransactionTypeExpense, f.food},
		{20, "Cinema", "30", entity.TransactionTypeExpense, nil},
	}
	for _, row := range rows {
		txn := entity.NewTransaction(f.userID, march(row.day), row.desc, amount(row.value), row.kind, nil, "")
		txn.AttachCategory(row.category)
		require.NoError(t, f.transactions.Create(context.Background(), txn))
	}
	other := entity.NewTransaction(uuid.New(), march(4), "Market", amount("500"), entity.TransactionTypeExpense, nil, "")
	require.NoError(t, f.transactions.Create(context.Background(), other))
}

func TestGetSummary(t *testing.T) {
	f := newFixture()
	seed(t, f)
	uc := NewGetSummaryUseCase(f.transactions)

	out, err := uc.Execute(context.Background(), GetSummaryInput{UserID: f.userID})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3000).Equal(out.Summary.TotalIncome))
	assert.True(t, decimal.NewFromInt(230).Equal(out.Summary.TotalExpense))
	assert.True(t, decimal.NewFromInt(2770).Equal(out.Summary.Balance))
	assert.Equal(t, 4, out.Summary.TransactionCount)

	out, err = uc.Execute(context.Background(), GetSummaryInput{
		UserID:    f.userID,
		DateRange: &entity.DateRange{Start: march(4), End: march(9)},
	})
	require.NoError(t, err)
	assert.True(t, out.Summary.TotalIncome.IsZero())
	assert.True(t, decimal.NewFromInt(200).Equal(out.Summary.TotalExpense))
	assert.True(t, decimal.NewFromInt(-200).Equal(out.Summary.Balance))
	assert.Equal(t, 2, out.Summary.TransactionCount)
}

func TestListTransactions(t *testing.T) {
	f := newFixture()
	seed(t, f)
	uc := NewListTransactionsUseCase(f.transactions)

	out, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Transactions, 2)
	assert.Equal(t, march(20), out.Transactions[0].Date, "newest first")
	assert.Equal(t, int64(4), out.Pagination.Total)
	assert.Equal(t, 2, out.Pagination.TotalPages)
	assert.Equal(t, 4, out.Summary.TransactionCount, "summary spans every page")

	t.Run("filters by search and category", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserID:      f.userID,
			Search:      "market",
			CategoryIDs: []uuid.UUID{f.food.ID},
		})
		require.NoError(t, err)
		assert.Len(t, out.Transactions, 2)
		assert.Equal(t, defaultPageSize, out.Pagination.Limit)
		assert.True(t, decimal.NewFromInt(200).Equal(out.Summary.TotalExpense))
	})

	t.Run("limit is capped", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: f.userID, Limit: 10_000, Page: -1})
		require.NoError(t, err)
		assert.Equal(t, maxPageSize, out.Pagination.Limit)
		assert.Equal(t, 1, out.Pagination.Page)
	})
}
