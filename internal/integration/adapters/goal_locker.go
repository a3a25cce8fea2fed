package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/application/adapter"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

const (
	goalLockKeyPrefix  = "goal-lock:"
	goalLockRetryDelay = 25 * time.Millisecond
)

// releaseScript deletes the lock only while it still carries the holder's token,
// so an expired holder cannot release a lock taken over by someone else.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisGoalLocker implements adapter.GoalLocker with a Redis key per goal,
// which serializes contributions across every API instance.
type redisGoalLocker struct {
	client  redis.UniversalClient
	ttl     time.Duration
	timeout time.Duration
}

// NewRedisGoalLocker creates a goal locker backed by Redis.
func NewRedisGoalLocker(client redis.UniversalClient, cfg config.GoalConfig) adapter.GoalLocker {
	return &redisGoalLocker{
		client:  client,
		ttl:     cfg.LockTTL,
		timeout: cfg.LockTimeout,
	}
}

// Lock polls SET NX until the key is acquired, ctx is done or the timeout elapses.
func (l *redisGoalLocker) Lock(ctx context.Context, goalID uuid.UUID) (func(), error) {
	key := goalLockKeyPrefix + goalID.String()
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ticker := time.NewTicker(goalLockRetryDelay)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("failed to acquire goal lock: %w", err)
		}
		if acquired {
			return l.releaseFunc(key, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", domainerror.ErrGoalBusy, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *redisGoalLocker) releaseFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled; release must still run.
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				slog.Warn("failed to release goal lock", "key", key, "error", err)
			}
		})
	}
}

// memoryGoalLocker implements adapter.GoalLocker inside a single process.
// It is used when no Redis server is configured.
type memoryGoalLocker struct {
	mu      sync.Mutex
	slots   map[uuid.UUID]*goalSlot
	timeout time.Duration
}

// goalSlot is a one-token semaphore. users counts the holder plus waiters;
// the slot leaves the map when it drops to zero.
type goalSlot struct {
	token chan struct{}
	users int
}

// NewMemoryGoalLocker creates an in-process goal locker.
func NewMemoryGoalLocker(cfg config.GoalConfig) adapter.GoalLocker {
	return &memoryGoalLocker{
		slots:   make(map[uuid.UUID]*goalSlot),
		timeout: cfg.LockTimeout,
	}
}

func (l *memoryGoalLocker) join(goalID uuid.UUID) *goalSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[goalID]
	if !ok {
		slot = &goalSlot{token: make(chan struct{}, 1)}
		l.slots[goalID] = slot
	}
	slot.users++
	return slot
}

func (l *memoryGoalLocker) leave(goalID uuid.UUID, slot *goalSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.users--
	if slot.users == 0 {
		delete(l.slots, goalID)
	}
}

// Lock waits for the goal's slot, giving up with ErrGoalBusy after the configured timeout.
func (l *memoryGoalLocker) Lock(ctx context.Context, goalID uuid.UUID) (func(), error) {
	slot := l.join(goalID)

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	select {
	case slot.token <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.token
				l.leave(goalID, slot)
			})
		}, nil
	case <-ctx.Done():
		l.leave(goalID, slot)
		return nil, fmt.Errorf("%w: %w", domainerror.ErrGoalBusy, ctx.Err())
	}
}

