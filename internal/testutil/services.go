package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
)

// Clock is a settable adapter.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a Clock frozen at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the frozen time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock.
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Locker is an adapter.GoalLocker backed by one mutex per goal.
type Locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
	Err   error // Returned by Lock when set
}

// NewLocker creates an empty Locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Lock acquires the goal's mutex.
func (l *Locker) Lock(_ context.Context, goalID uuid.UUID) (func(), error) {
	if l.Err != nil {
		return nil, l.Err
	}

	l.mu.Lock()
	m, ok := l.locks[goalID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[goalID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}

// Notifier records goal-completed notifications.
type Notifier struct {
	mu        sync.Mutex
	Completed []uuid.UUID
	Err       error // Returned by GoalCompleted when set
}

// GoalCompleted records the goal ID.
func (n *Notifier) GoalCompleted(_ context.Context, _ *entity.User, goal *entity.Goal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Completed = append(n.Completed, goal.ID)
	return n.Err
}

// Sent returns how many notifications were recorded.
func (n *Notifier) Sent() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Completed)
}

// ErrInvalidToken is returned by TokenService for unknown tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenService is an adapter.TokenService that issues opaque tokens.
type TokenService struct {
	mu      sync.Mutex
	access  map[string]adapter.TokenClaims
	refresh map[string]adapter.TokenClaims
	revoked map[string]bool
}

// NewTokenService creates an empty TokenService.
func NewTokenService() *TokenService {
	return &TokenService{
		access:  make(map[string]adapter.TokenClaims),
		refresh: make(map[string]adapter.TokenClaims),
		revoked: make(map[string]bool),
	}
}

func (s *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, _ bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims := adapter.TokenClaims{UserID: userID, Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	access := "access-" + uuid.NewString()
	refresh := "refresh-" + uuid.NewString()
	s.access[access] = claims
	s.refresh[refresh] = claims
	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccessToken returns a valid access token for userID.
func (s *TokenService) IssueAccessToken(userID uuid.UUID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	access := "access-" + uuid.NewString()
	s.access[access] = adapter.TokenClaims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}
	return access
}

func (s *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.access[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (s *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.refresh[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

func (s *TokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = true
	return nil
}

func (s *TokenService) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, claims := range s.refresh {
		if claims.UserID == userID {
			s.revoked[token] = true
		}
	}
	return nil
}

func (s *TokenService) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.refresh[token]
	return ok && !s.revoked[token], nil
}
