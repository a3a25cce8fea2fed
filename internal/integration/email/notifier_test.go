package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/domain/entity"
	"github.com/organized-life/backend/internal/integration/email/templates"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (s *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, msg)
	return "msg-1", nil
}

func newTestGoal(userID uuid.UUID) *entity.Goal {
	return entity.NewGoal(userID, "New laptop", entity.GoalTypePurchase, decimal.NewFromInt(1500), decimal.NewFromInt(1500), nil)
}

func TestGoalNotifier_GoalCompleted(t *testing.T) {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	sender := &recordingSender{}
	notifier := NewGoalNotifier(sender, renderer, "https://app.example.com")

	user := entity.NewUser("ana@example.com", "Ana", "hash", time.Now())
	goal := newTestGoal(user.ID)

	require.NoError(t, notifier.GoalCompleted(context.Background(), user, goal))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "ana@example.com", msg.To)
	assert.Equal(t, "You reached your goal: New laptop", msg.Subject)
	assert.Contains(t, msg.HTML, "https://app.example.com/goals/"+goal.ID.String())
	assert.Contains(t, msg.Text, "1500.00 USD")
}

func TestGoalNotifier_SendFailure(t *testing.T) {
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	sendErr := errors.New("resend unavailable")
	notifier := NewGoalNotifier(&recordingSender{err: sendErr}, renderer, "https://app.example.com")

	user := entity.NewUser("ana@example.com", "Ana", "hash", time.Now())
	err = notifier.GoalCompleted(context.Background(), user, newTestGoal(user.ID))
	assert.ErrorIs(t, err, sendErr)
}

func TestNewNotifier_WithoutAPIKeyIsNoop(t *testing.T) {
	notifier, err := NewNotifier(config.EmailConfig{})
	require.NoError(t, err)

	_, isResend := notifier.(*GoalNotifier)
	assert.False(t, isResend)

	user := entity.NewUser("ana@example.com", "Ana", "hash", time.Now())
	assert.NoError(t, notifier.GoalCompleted(context.Background(), user, newTestGoal(user.ID)))
}

func TestNewNotifier_WithAPIKey(t *testing.T) {
	notifier, err := NewNotifier(config.EmailConfig{ResendAPIKey: "re_test", FromName: "OrganizedLife", FromEmail: "noreply@example.com"})
	require.NoError(t, err)

	_, isResend := notifier.(*GoalNotifier)
	assert.True(t, isResend)
}

func TestNewNotifier_InvalidBaseURL(t *testing.T) {
	_, err := NewNotifier(config.EmailConfig{ResendAPIKey: "re_test", ResendBaseURL: "://missing-scheme"})
	assert.Error(t, err)
}
