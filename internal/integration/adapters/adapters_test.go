package adapters

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/organized-life/backend/config"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

type fakeTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
	dead   map[string]bool
}

func newFakeTokenRepository() *fakeTokenRepository {
	return &fakeTokenRepository{tokens: map[string]uuid.UUID{}, dead: map[string]bool{}}
}

func (r *fakeTokenRepository) SaveRefreshToken(_ context.Context, token string, userID uuid.UUID, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = userID
	return nil
}

func (r *fakeTokenRepository) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[token]
	return ok && !r.dead[token], nil
}

func (r *fakeTokenRepository) InvalidateRefreshToken(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dead[token] = true
	return nil
}

func (r *fakeTokenRepository) InvalidateAllUserRefreshTokens(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, owner := range r.tokens {
		if owner == userID {
			r.dead[token] = true
		}
	}
	return nil
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.NoError(t, svc.VerifyPassword(hash, "s3cret-pass"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong-pass"))

	assert.Error(t, svc.ValidatePasswordStrength("short"))
	assert.NoError(t, svc.ValidatePasswordStrength("long enough"))
}

func TestPasswordService_InvalidCostFallsBack(t *testing.T) {
	svc := NewPasswordService(99).(*passwordService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}

func TestTokenService(t *testing.T) {
	repo := newFakeTokenRepository()
	svc := NewTokenService(config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  time.Minute,
		RefreshTokenExpiry: time.Hour,
	}, repo)
	ctx := context.Background()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)

	t.Run("access token validates as access", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("refresh token is rejected as access token", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		other := NewTokenService(config.JWTConfig{Secret: "other", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour}, newFakeTokenRepository())
		_, err := other.ValidateAccessToken(ctx, pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("refresh token is stored and can be revoked", func(t *testing.T) {
		valid, err := svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.True(t, valid)

		require.NoError(t, svc.InvalidateAllUserTokens(ctx, userID))

		valid, err = svc.IsRefreshTokenValid(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService(config.JWTConfig{Secret: "s", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour}, newFakeTokenRepository()).(*tokenService)
	svc.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Hour) }

	pair, err := svc.GenerateTokenPair(context.Background(), uuid.New(), "a@b.c", false)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(context.Background(), pair.AccessToken)
	assert.Error(t, err)
}

func TestSystemClock(t *testing.T) {
	now := NewSystemClock().Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func newRedisLocker(t *testing.T, timeout time.Duration) (*miniredis.Miniredis, *redisGoalLocker) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	locker := NewRedisGoalLocker(client, config.GoalConfig{LockTTL: 5 * time.Second, LockTimeout: timeout})
	return server, locker.(*redisGoalLocker)
}

func TestRedisGoalLocker_AcquireAndRelease(t *testing.T) {
	server, locker := newRedisLocker(t, time.Second)
	goalID := uuid.New()

	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	assert.True(t, server.Exists(goalLockKeyPrefix+goalID.String()))
	assert.True(t, server.TTL(goalLockKeyPrefix+goalID.String()) > 0)

	release()
	release()
	assert.False(t, server.Exists(goalLockKeyPrefix+goalID.String()))

	release, err = locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	release()
}

func TestRedisGoalLocker_BusyAfterTimeout(t *testing.T) {
	_, locker := newRedisLocker(t, 100*time.Millisecond)
	goalID := uuid.New()

	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	defer release()

	_, err = locker.Lock(context.Background(), goalID)
	assert.ErrorIs(t, err, domainerror.ErrGoalBusy)
}

func TestRedisGoalLocker_ReleaseKeepsForeignLock(t *testing.T) {
	server, locker := newRedisLocker(t, time.Second)
	goalID := uuid.New()
	key := goalLockKeyPrefix + goalID.String()

	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)

	// Simulate expiry followed by another holder taking the key.
	require.NoError(t, server.Set(key, "someone-else"))
	release()

	value, err := server.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}

func TestRedisGoalLocker_WaitsForHolder(t *testing.T) {
	_, locker := newRedisLocker(t, 2*time.Second)
	goalID := uuid.New()

	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		release()
	}()

	second, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	second()
}

func TestMemoryGoalLocker(t *testing.T) {
	locker := NewMemoryGoalLocker(config.GoalConfig{LockTimeout: 50 * time.Millisecond})
	goalID := uuid.New()

	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)

	_, err = locker.Lock(context.Background(), goalID)
	assert.True(t, errors.Is(err, domainerror.ErrGoalBusy))

	other, err := locker.Lock(context.Background(), uuid.New())
	require.NoError(t, err)
	other()

	release()
	release, err = locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	release()
}

func TestMemoryGoalLocker_SerializesCriticalSection(t *testing.T) {
	locker := NewMemoryGoalLocker(config.GoalConfig{LockTimeout: 5 * time.Second})
	goalID := uuid.New()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Lock(context.Background(), goalID)
			if err != nil {
				return
			}
			defer release()
			v := counter
			time.Sleep(time.Millisecond)
			counter = v + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
}

func (l *memoryGoalLocker) trackedGoals() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func TestMemoryGoalLocker_ForgetsIdleGoals(t *testing.T) {
	locker := NewMemoryGoalLocker(config.GoalConfig{LockTimeout: 20 * time.Millisecond}).(*memoryGoalLocker)

	for i := 0; i < 100; i++ {
		release, err := locker.Lock(context.Background(), uuid.New())
		require.NoError(t, err)
		release()
		release()
	}
	assert.Zero(t, locker.trackedGoals())

	goalID := uuid.New()
	release, err := locker.Lock(context.Background(), goalID)
	require.NoError(t, err)
	_, err = locker.Lock(context.Background(), goalID)
	require.ErrorIs(t, err, domainerror.ErrGoalBusy)
	assert.Equal(t, 1, locker.trackedGoals(), "a timed-out waiter leaves the holder's slot in place")

	release()
	assert.Zero(t, locker.trackedGoals())
}
