package goal

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
	"github.com/organized-life/backend/internal/testutil"
)

type contributionFixture struct {
	user     *entity.User
	goals    *testutil.GoalRepository
	notifier *testutil.Notifier
	locker   *testutil.Locker
	uc       *AddContributionUseCase
}

func newContributionFixture(goals ...*entity.Goal) *contributionFixture {
	user := entity.NewUser("saver@example.com", "Saver", "hash", today)
	for _, g := range goals {
		g.UserID = user.ID
	}

	f := &contributionFixture{
		user:     user,
		goals:    testutil.NewGoalRepository(goals...),
		notifier: &testutil.Notifier{},
		locker:   testutil.NewLocker(),
	}
	f.uc = NewAddContributionUseCase(f.goals, testutil.NewUserRepository(user), f.locker, f.notifier, testutil.NewClock(today))
	return f
}

func TestAddContribution_AccumulatesAndCompletes(t *testing.T) {
	g := newGoal(uuid.Nil, "1000", "900")
	f := newContributionFixture(g)

	out, err := f.uc.Execute(context.Background(), AddContributionInput{
		GoalID: g.ID,
		UserID: f.user.ID,
		Amount: decimal.NewFromInt(150),
		Note:   "bonus",
	})
	require.NoError(t, err)

	assert.True(t, out.Goal.Goal.CurrentAmount.Equal(decimal.NewFromInt(1050)))
	assert.Equal(t, entity.GoalStatusCompleted, out.Goal.Goal.Status)
	assert.True(t, out.Completed)
	assert.Equal(t, 105.0, out.Goal.Progress)
	assert.True(t, out.Goal.Remaining.IsZero())
	assert.Equal(t, entity.DateOf(today), out.Contribution.Date)
	assert.Equal(t, "bonus", out.Contribution.Note)
	assert.Equal(t, 1, f.notifier.Sent())

	// A further deposit keeps the goal completed and does not notify again.
	out, err = f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, out.Goal.Goal.CurrentAmount.Equal(decimal.NewFromInt(1060)))
	assert.False(t, out.Completed)
	assert.Equal(t, 1, f.notifier.Sent())
	assert.Equal(t, 2, f.goals.ContributionCount(g.ID))
}

func TestAddContribution_InvalidAmountDoesNotMutate(t *testing.T) {
	g := newGoal(uuid.Nil, "1000", "100")
	f := newContributionFixture(g)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-20), decimal.RequireFromString("0.001")} {
		_, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: amount})
		assert.ErrorIs(t, err, domainerror.ErrInvalidAmount)
		assert.Equal(t, domainerror.ErrCodeInvalidContribution, goalCode(t, err))
	}

	stored, err := f.goals.FindByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentAmount.Equal(decimal.NewFromInt(100)))
	assert.Zero(t, f.goals.ContributionCount(g.ID))
}

func TestAddContribution_UnknownGoal(t *testing.T) {
	f := newContributionFixture()

	_, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: uuid.New(), UserID: f.user.ID, Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}

func TestAddContribution_NotificationPreferences(t *testing.T) {
	g := newGoal(uuid.Nil, "100", "0")
	f := newContributionFixture(g)
	f.user.GoalAlerts = false

	out, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.Zero(t, f.notifier.Sent())
}

func TestAddContribution_NotifierFailureDoesNotFailRequest(t *testing.T) {
	g := newGoal(uuid.Nil, "100", "0")
	f := newContributionFixture(g)
	f.notifier.Err = errors.New("smtp down")

	out, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.True(t, out.Completed)
}

func TestAddContribution_LockUnavailable(t *testing.T) {
	g := newGoal(uuid.Nil, "100", "0")
	f := newContributionFixture(g)
	f.locker.Err = domainerror.ErrGoalBusy

	_, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(1)})
	assert.Equal(t, domainerror.ErrCodeGoalBusy, goalCode(t, err))
	assert.Zero(t, f.goals.ContributionCount(g.ID))
}

func TestAddContribution_ConcurrentDepositsAreNotLost(t *testing.T) {
	g := newGoal(uuid.Nil, "1000000", "0")
	f := newContributionFixture(g)

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), AddContributionInput{
				GoalID: g.ID,
				UserID: f.user.ID,
				Amount: decimal.RequireFromString("10.10"),
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := f.goals.FindByID(context.Background(), g.ID)
	require.NoError(t, err)
	assert.True(t, stored.CurrentAmount.Equal(decimal.RequireFromString("505")), stored.CurrentAmount.String())
	assert.Equal(t, workers, f.goals.ContributionCount(g.ID))
}

func TestListContributions_NewestFirst(t *testing.T) {
	g := newGoal(uuid.Nil, "1000", "0")
	f := newContributionFixture(g)

	first := today.AddDate(0, 0, -5)
	second := today.AddDate(0, 0, -1)
	_, err := f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(1), Date: &first})
	require.NoError(t, err)
	_, err = f.uc.Execute(context.Background(), AddContributionInput{GoalID: g.ID, UserID: f.user.ID, Amount: decimal.NewFromInt(2), Date: &second})
	require.NoError(t, err)

	uc := NewListContributionsUseCase(f.goals)
	out, err := uc.Execute(context.Background(), ListContributionsInput{GoalID: g.ID, UserID: f.user.ID})
	require.NoError(t, err)
	require.Len(t, out.Contributions, 2)
	assert.True(t, out.Contributions[0].Amount.Equal(decimal.NewFromInt(2)))
	assert.True(t, out.Contributions[1].Amount.Equal(decimal.NewFromInt(1)))

	_, err = uc.Execute(context.Background(), ListContributionsInput{GoalID: g.ID, UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
}
