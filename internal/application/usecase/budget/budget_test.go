package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/testutil"
)

var march = entity.Month{Year: 2025, Month: time.March}

func budgetCode(t *testing.T, err error) domainerror.BudgetErrorCode {
	t.Helper()
	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr), "expected BudgetError, got %v", err)
	return budgetErr.Code
}

func expenseOn(userID, categoryID uuid.UUID, day time.Time, amount string) *entity.Transaction {
	return entity.NewTransaction(userID, day, "spend", decimal.RequireFromString(amount),
		entity.TransactionTypeExpense, &categoryID, "")
}

func TestCreateBudget(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory("Food", "#EF4444", "utensils", userID, entity.CategoryTypeExpense)
	salary := entity.NewCategory("Salary", "#10B981", "briefcase", userID, entity.CategoryTypeIncome)
	foreign := entity.NewCategory("Theirs", "#000000", "tag", uuid.New(), entity.CategoryTypeExpense)

	budgets := testutil.NewBudgetRepository()
	uc := NewCreateBudgetUseCase(budgets, testutil.NewCategoryRepository(food, salary, foreign))

	out, err := uc.Execute(context.Background(), CreateBudgetInput{
		UserID:     userID,
		CategoryID: food.ID,
		Month:      "2025-03",
		Limit:      decimal.NewFromInt(400),
	})
	require.NoError(t, err)
	assert.Equal(t, march, out.Budget.Month)
	assert.Equal(t, "Food", out.Category.Name)

	tests := []struct {
		name  string
		input CreateBudgetInput
		code  domainerror.BudgetErrorCode
	}{
		{"zero limit", CreateBudgetInput{UserID: userID, CategoryID: food.ID, Month: "2025-04", Limit: decimal.Zero}, domainerror.ErrCodeInvalidBudgetLimit},
		{"sub-cent limit", CreateBudgetInput{UserID: userID, CategoryID: food.ID, Month: "2025-04", Limit: decimal.RequireFromString("0.001")}, domainerror.ErrCodeInvalidBudgetLimit},
		{"bad month", CreateBudgetInput{UserID: userID, CategoryID: food.ID, Month: "March", Limit: decimal.NewFromInt(1)}, domainerror.ErrCodeInvalidBudgetMonth},
		{"unknown category", CreateBudgetInput{UserID: userID, CategoryID: uuid.New(), Month: "2025-04", Limit: decimal.NewFromInt(1)}, domainerror.ErrCodeBudgetCategoryNotFound},
		{"foreign category", CreateBudgetInput{UserID: userID, CategoryID: foreign.ID, Month: "2025-04", Limit: decimal.NewFromInt(1)}, domainerror.ErrCodeBudgetCategoryNotFound},
		{"income category", CreateBudgetInput{UserID: userID, CategoryID: salary.ID, Month: "2025-04", Limit: decimal.NewFromInt(1)}, domainerror.ErrCodeBudgetCategoryNotExpense},
		{"duplicate", CreateBudgetInput{UserID: userID, CategoryID: food.ID, Month: "2025-03", Limit: decimal.NewFromInt(1)}, domainerror.ErrCodeBudgetAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.code, budgetCode(t, err))
		})
	}

	_, err = uc.Execute(context.Background(), tests[0].input)
	assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
}

// staleExistence answers the existence check from before a concurrent create landed.
type staleExistence struct {
	*testutil.BudgetRepository
}

func (staleExistence) ExistsByUserCategoryMonth(context.Context, uuid.UUID, uuid.UUID, entity.Month) (bool, error) {
	return false, nil
}

func TestCreateBudget_ConcurrentDuplicateIsConflict(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory("Food", "#EF4444", "utensils", userID, entity.CategoryTypeExpense)
	budgets := testutil.NewBudgetRepository(entity.NewBudgetLimit(userID, food.ID, march, decimal.NewFromInt(300)))
	uc := NewCreateBudgetUseCase(staleExistence{budgets}, testutil.NewCategoryRepository(food))

	_, err := uc.Execute(context.Background(), CreateBudgetInput{
		UserID:     userID,
		CategoryID: food.ID,
		Month:      "2025-03",
		Limit:      decimal.NewFromInt(400),
	})
	assert.Equal(t, domainerror.ErrCodeBudgetAlreadyExists, budgetCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrBudgetAlreadyExists)

	stored, err := budgets.FindByUserAndMonth(context.Background(), userID, march)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, stored[0].Limit.Equal(decimal.NewFromInt(300)))
}

func TestListBudgets(t *testing.T) {
	userID := uuid.New()
	food := entity.NewCategory("Food", "#EF4444", "utensils", userID, entity.CategoryTypeExpense)
	fun := entity.NewCategory("Fun", "#8B5CF6", "music", userID, entity.CategoryTypeExpense)
	ghostID := uuid.New()

	foodLimit := entity.NewBudgetLimit(userID, food.ID, march, decimal.NewFromInt(100))
	funLimit := entity.NewBudgetLimit(userID, fun.ID, march, decimal.NewFromInt(200))
	funLimit.CreatedAt = foodLimit.CreatedAt.Add(time.Second)
	ghostLimit := entity.NewBudgetLimit(userID, ghostID, march, decimal.NewFromInt(50))
	ghostLimit.CreatedAt = foodLimit.CreatedAt.Add(2 * time.Second)
	aprilLimit := entity.NewBudgetLimit(userID, food.ID, march.Add(1), decimal.NewFromInt(999))

	transactions := testutil.NewTransactionRepository(
		expenseOn(userID, food.ID, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), "70"),
		expenseOn(userID, food.ID, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "40"),
		expenseOn(userID, food.ID, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "500"),
		expenseOn(userID, fun.ID, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), "160"),
	)

	uc := NewListBudgetsUseCase(
		testutil.NewBudgetRepository(foodLimit, funLimit, ghostLimit, aprilLimit),
		transactions,
		testutil.NewCategoryRepository(food, fun),
		testutil.NewClock(time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)),
	)

	out, err := uc.Execute(context.Background(), ListBudgetsInput{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", out.Month)
	require.Len(t, out.Budgets, 3)

	foodItem := out.Budgets[0]
	assert.Equal(t, "Food", foodItem.CategoryName)
	assert.True(t, foodItem.Item.Spent.Equal(decimal.NewFromInt(110)))
	assert.True(t, foodItem.Item.Remaining.Equal(decimal.NewFromInt(-10)))
	assert.Equal(t, aggregation.BudgetStatusOverBudget, foodItem.Item.Status)

	funItem := out.Budgets[1]
	assert.Equal(t, 80.0, funItem.Item.PercentageUsed)
	assert.Equal(t, aggregation.BudgetStatusWarning, funItem.Item.Status)

	ghostItem := out.Budgets[2]
	assert.Equal(t, aggregation.UnknownCategoryName, ghostItem.CategoryName)
	assert.Equal(t, aggregation.BudgetStatusOnTrack, ghostItem.Item.Status)

	assert.True(t, out.Summary.TotalBudget.Equal(decimal.NewFromInt(350)))
	assert.True(t, out.Summary.TotalSpent.Equal(decimal.NewFromInt(270)))
	assert.Equal(t, 1, out.Summary.OverBudgetCount)
	assert.Equal(t, 3, out.Summary.CategoriesCount)

	out, err = uc.Execute(context.Background(), ListBudgetsInput{UserID: userID, Month: "2025-04"})
	require.NoError(t, err)
	require.Len(t, out.Budgets, 1)
	assert.True(t, out.Budgets[0].Item.Spent.Equal(decimal.NewFromInt(500)))
}

func TestUpdateAndDeleteBudget(t *testing.T) {
	userID := uuid.New()
	limit := entity.NewBudgetLimit(userID, uuid.New(), march, decimal.NewFromInt(100))
	repo := testutil.NewBudgetRepository(limit)

	now := time.Date(2025, time.March, 20, 8, 30, 0, 0, time.UTC)
	update := NewUpdateBudgetUseCase(repo, testutil.NewClock(now))
	out, err := update.Execute(context.Background(), UpdateBudgetInput{BudgetID: limit.ID, UserID: userID, Limit: decimal.NewFromInt(250)})
	require.NoError(t, err)
	assert.True(t, out.Budget.Limit.Equal(decimal.NewFromInt(250)))

	stored, err := repo.FindByID(context.Background(), limit.ID)
	require.NoError(t, err)
	assert.Equal(t, now, stored.UpdatedAt)

	_, err = update.Execute(context.Background(), UpdateBudgetInput{BudgetID: limit.ID, UserID: userID, Limit: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)

	_, err = update.Execute(context.Background(), UpdateBudgetInput{BudgetID: limit.ID, UserID: uuid.New(), Limit: decimal.NewFromInt(1)})
	assert.Equal(t, domainerror.ErrCodeBudgetNotFound, budgetCode(t, err))

	del := NewDeleteBudgetUseCase(repo)
	err = del.Execute(context.Background(), DeleteBudgetInput{BudgetID: uuid.New(), UserID: userID})
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)

	require.NoError(t, del.Execute(context.Background(), DeleteBudgetInput{BudgetID: limit.ID, UserID: userID}))
	_, err = repo.FindByID(context.Background(), limit.ID)
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
}
