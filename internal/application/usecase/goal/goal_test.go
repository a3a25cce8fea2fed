package goal

import (
	"context"
	"errors"
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

var today = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func newGoal(userID uuid.UUID, target, current string) *entity.Goal {
	return entity.NewGoal(userID, "Vacation", entity.GoalTypeSavings,
		decimal.RequireFromString(target), decimal.RequireFromString(current), nil)
}

func goalCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	require.True(t, errors.As(err, &goalErr), "expected GoalError, got %v", err)
	return goalErr.Code
}

func TestCreateGoal(t *testing.T) {
	userID := uuid.New()
	clock := testutil.NewClock(today)

	t.Run("applies type defaults", func(t *testing.T) {
		repo := testutil.NewGoalRepository()
		uc := NewCreateGoalUseCase(repo, clock)

		out, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:       userID,
			Name:         "  Emergency  ",
			Type:         entity.GoalTypeEmergencyFund,
			TargetAmount: decimal.NewFromInt(5000),
		})
		require.NoError(t, err)

		g := out.Goal.Goal
		assert.Equal(t, "Emergency", g.Name)
		assert.Equal(t, "shield", g.Icon)
		assert.Equal(t, "#F59E0B", g.Color)
		assert.Equal(t, entity.GoalStatusActive, g.Status)
		assert.Equal(t, 0.0, out.Goal.Progress)

		stored, err := repo.FindByID(context.Background(), g.ID)
		require.NoError(t, err)
		assert.Equal(t, g.Name, stored.Name)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		past := today.AddDate(0, 0, -1)
		tests := []struct {
			name  string
			input CreateGoalInput
			code  domainerror.GoalErrorCode
		}{
			{"empty name", CreateGoalInput{Name: " ", TargetAmount: decimal.NewFromInt(1)}, domainerror.ErrCodeGoalNameRequired},
			{"zero target", CreateGoalInput{Name: "x", TargetAmount: decimal.Zero}, domainerror.ErrCodeInvalidGoalAmount},
			{"sub-cent target", CreateGoalInput{Name: "x", TargetAmount: decimal.RequireFromString("99.999")}, domainerror.ErrCodeInvalidGoalAmount},
			{"negative current", CreateGoalInput{Name: "x", TargetAmount: decimal.NewFromInt(1), CurrentAmount: decimal.NewFromInt(-1)}, domainerror.ErrCodeInvalidGoalAmount},
			{"sub-cent current", CreateGoalInput{Name: "x", TargetAmount: decimal.NewFromInt(1), CurrentAmount: decimal.RequireFromString("0.005")}, domainerror.ErrCodeInvalidGoalAmount},
			{"unknown type", CreateGoalInput{Name: "x", Type: "yacht", TargetAmount: decimal.NewFromInt(1)}, domainerror.ErrCodeInvalidGoalType},
			{"bad color", CreateGoalInput{Name: "x", TargetAmount: decimal.NewFromInt(1), Color: "red"}, domainerror.ErrCodeInvalidGoalColor},
			{"past target date", CreateGoalInput{Name: "x", TargetAmount: decimal.NewFromInt(1), TargetDate: &past}, domainerror.ErrCodeInvalidTargetDate},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewCreateGoalUseCase(testutil.NewGoalRepository(), clock)
				_, err := uc.Execute(context.Background(), tt.input)
				assert.Equal(t, tt.code, goalCode(t, err))
			})
		}
	})

	t.Run("initial amount at target completes the goal", func(t *testing.T) {
		uc := NewCreateGoalUseCase(testutil.NewGoalRepository(), clock)
		out, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:        userID,
			Name:          "Done",
			TargetAmount:  decimal.NewFromInt(100),
			CurrentAmount: decimal.NewFromInt(100),
		})
		require.NoError(t, err)
		assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Goal.Status)
	})
}

func TestGetGoal_OtherUsersGoalIsNotFound(t *testing.T) {
	owner := uuid.New()
	g := newGoal(owner, "100", "0")
	uc := NewGetGoalUseCase(testutil.NewGoalRepository(g), testutil.NewClock(today))

	_, err := uc.Execute(context.Background(), GetGoalInput{GoalID: g.ID, UserID: uuid.New()})
	assert.Equal(t, domainerror.ErrCodeGoalNotFound, goalCode(t, err))
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)

	_, err = uc.Execute(context.Background(), GetGoalInput{GoalID: uuid.New(), UserID: owner})
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}

func TestGetGoal_DerivedFigures(t *testing.T) {
	userID := uuid.New()
	target := time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC)
	g := newGoal(userID, "1000", "400")
	g.TargetDate = &target

	uc := NewGetGoalUseCase(testutil.NewGoalRepository(g), testutil.NewClock(today))
	out, err := uc.Execute(context.Background(), GetGoalInput{GoalID: g.ID, UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, 40.0, out.Goal.Progress)
	assert.True(t, out.Goal.Remaining.Equal(decimal.NewFromInt(600)))
	require.NotNil(t, out.Goal.DaysRemaining)
	assert.Equal(t, 30, *out.Goal.DaysRemaining)
	require.NotNil(t, out.Goal.MonthlyNeeded)
	assert.True(t, out.Goal.MonthlyNeeded.Equal(decimal.NewFromInt(600)))
}

func TestListGoals(t *testing.T) {
	userID := uuid.New()
	active := newGoal(userID, "1000", "250")
	completed := newGoal(userID, "200", "200")
	completed.Status = entity.GoalStatusCompleted
	foreign := newGoal(uuid.New(), "50", "0")

	repo := testutil.NewGoalRepository(active, completed, foreign)
	uc := NewListGoalsUseCase(repo, testutil.NewClock(today))

	out, err := uc.Execute(context.Background(), ListGoalsInput{UserID: userID})
	require.NoError(t, err)
	assert.Len(t, out.Goals, 2)
	assert.Equal(t, 2, out.Summary.TotalGoals)
	assert.Equal(t, 1, out.Summary.ActiveGoals)
	assert.Equal(t, 1, out.Summary.CompletedGoals)
	assert.True(t, out.Summary.TotalTargetAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 25.0, out.Summary.OverallProgress)

	status := entity.GoalStatusCompleted
	out, err = uc.Execute(context.Background(), ListGoalsInput{UserID: userID, Status: &status})
	require.NoError(t, err)
	require.Len(t, out.Goals, 1)
	assert.Equal(t, completed.ID, out.Goals[0].Goal.ID)
	assert.Equal(t, 2, out.Summary.TotalGoals)

	bad := entity.GoalStatus("archived")
	_, err = uc.Execute(context.Background(), ListGoalsInput{UserID: userID, Status: &bad})
	assert.Equal(t, domainerror.ErrCodeInvalidGoalStatus, goalCode(t, err))
}

func TestUpdateGoal(t *testing.T) {
	userID := uuid.New()
	clock := testutil.NewClock(today)

	t.Run("lowering target below saved amount completes the goal", func(t *testing.T) {
		g := newGoal(userID, "1000", "300")
		repo := testutil.NewGoalRepository(g)
		uc := NewUpdateGoalUseCase(repo, testutil.NewLocker(), clock)

		target := decimal.NewFromInt(300)
		out, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: g.ID, UserID: userID, TargetAmount: &target})
		require.NoError(t, err)
		assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Goal.Status)
	})

	t.Run("clears target date", func(t *testing.T) {
		g := newGoal(userID, "1000", "0")
		d := today.AddDate(0, 1, 0)
		g.TargetDate = &d
		repo := testutil.NewGoalRepository(g)
		uc := NewUpdateGoalUseCase(repo, testutil.NewLocker(), clock)

		out, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: g.ID, UserID: userID, ClearTargetDate: true})
		require.NoError(t, err)
		assert.Nil(t, out.Goal.Goal.TargetDate)
		assert.Nil(t, out.Goal.DaysRemaining)
	})

	t.Run("invalid target leaves goal untouched", func(t *testing.T) {
		g := newGoal(userID, "1000", "0")
		repo := testutil.NewGoalRepository(g)
		uc := NewUpdateGoalUseCase(repo, testutil.NewLocker(), clock)

		target := decimal.NewFromInt(-5)
		name := "Renamed"
		_, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: g.ID, UserID: userID, Name: &name, TargetAmount: &target})
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)

		stored, err := repo.FindByID(context.Background(), g.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vacation", stored.Name)
	})
}

// contributeAfterRead commits a contribution right after the first FindByID,
// as a concurrent request would between an update's read and its write.
type contributeAfterRead struct {
	*testutil.GoalRepository
	amount decimal.Decimal
	done   bool
}

func (r *contributeAfterRead) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	goal, err := r.GoalRepository.FindByID(ctx, id)
	if err != nil || r.done {
		return goal, err
	}
	r.done = true

	_, _, err = r.AddContribution(ctx, id, func(current *entity.Goal) (*entity.Goal, *entity.GoalContribution, error) {
		contribution := entity.NewGoalContribution(current.ID, r.amount, today, "")
		updated := current.Clone()
		updated.CurrentAmount = updated.CurrentAmount.Add(r.amount)
		return updated, contribution, nil
	})
	return goal, err
}

func TestUpdateGoal_KeepsConcurrentContribution(t *testing.T) {
	userID := uuid.New()
	g := newGoal(userID, "1000", "100")
	repo := &contributeAfterRead{GoalRepository: testutil.NewGoalRepository(g), amount: decimal.NewFromInt(200)}
	uc := NewUpdateGoalUseCase(repo, testutil.NewLocker(), testutil.NewClock(today))

	name := "Trip"
	out, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: g.ID, UserID: userID, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Trip", out.Goal.Goal.Name)
	assert.True(t, decimal.NewFromInt(300).Equal(out.Goal.Goal.CurrentAmount), "got %s", out.Goal.Goal.CurrentAmount)

	stored, err := repo.GoalRepository.FindByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(stored.CurrentAmount))
	assert.Equal(t, 1, repo.ContributionCount(g.ID))
}

func TestUpdateGoal_LockUnavailable(t *testing.T) {
	userID := uuid.New()
	g := newGoal(userID, "1000", "0")
	locker := testutil.NewLocker()
	locker.Err = domainerror.ErrGoalBusy
	uc := NewUpdateGoalUseCase(testutil.NewGoalRepository(g), locker, testutil.NewClock(today))

	name := "Trip"
	_, err := uc.Execute(context.Background(), UpdateGoalInput{GoalID: g.ID, UserID: userID, Name: &name})
	assert.Equal(t, domainerror.ErrCodeGoalBusy, goalCode(t, err))
}

func TestDeleteGoal(t *testing.T) {
	userID := uuid.New()
	g := newGoal(userID, "100", "0")
	repo := testutil.NewGoalRepository(g)
	uc := NewDeleteGoalUseCase(repo)

	err := uc.Execute(context.Background(), DeleteGoalInput{GoalID: g.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)

	require.NoError(t, uc.Execute(context.Background(), DeleteGoalInput{GoalID: g.ID, UserID: userID}))

	_, err = repo.FindByID(context.Background(), g.ID)
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}
