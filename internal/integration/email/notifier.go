package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/organized-life/backend/config"
	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/entity"
	"github.com/organized-life/backend/internal/integration/email/templates"
)

// GoalNotifier implements adapter.Notifier by emailing the goal owner.
type GoalNotifier struct {
	sender     Sender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewGoalNotifier creates a notifier that renders and sends goal emails through sender.
func NewGoalNotifier(sender Sender, renderer *templates.Renderer, appBaseURL string) *GoalNotifier {
	return &GoalNotifier{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: appBaseURL,
	}
}

// GoalCompleted sends the goal-completed email.
func (n *GoalNotifier) GoalCompleted(ctx context.Context, user *entity.User, goal *entity.Goal) error {
	data := templates.GoalCompletedData{
		UserName:     user.Name,
		GoalName:     goal.Name,
		TargetAmount: goal.TargetAmount.StringFixed(2),
		Currency:     user.Currency,
		GoalURL:      fmt.Sprintf("%s/goals/%s", n.appBaseURL, goal.ID),
	}

	html, text, err := n.renderer.Render(templates.GoalCompleted, data)
	if err != nil {
		return err
	}

	id, err := n.sender.Send(ctx, Message{
		To:      user.Email,
		Subject: fmt.Sprintf("You reached your goal: %s", goal.Name),
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "goal completed email sent",
		"user_id", user.ID,
		"goal_id", goal.ID,
		"message_id", id,
	)
	return nil
}

// noopNotifier is used when email delivery is not configured.
type noopNotifier struct{}

func (noopNotifier) GoalCompleted(ctx context.Context, user *entity.User, goal *entity.Goal) error {
	slog.DebugContext(ctx, "email disabled, skipping goal completed notification",
		"user_id", user.ID,
		"goal_id", goal.ID,
	)
	return nil
}

// NewNotifier builds the notifier for cfg. Without a Resend API key it returns a no-op.
func NewNotifier(cfg config.EmailConfig) (adapter.Notifier, error) {
	if cfg.ResendAPIKey == "" {
		return noopNotifier{}, nil
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, err
	}

	client, err := NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail, cfg.ResendBaseURL)
	if err != nil {
		return nil, err
	}
	return NewGoalNotifier(client, renderer, cfg.AppBaseURL), nil
}

var _ adapter.Notifier = (*GoalNotifier)(nil)
