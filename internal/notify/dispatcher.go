package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/threads/internal/events"
	"github.com/alfredjeanlab/threads/internal/model"
)

// Dispatcher runs the configured delivery command for each notification
// created by the comment service.
type Dispatcher struct {
	command string
	timeout time.Duration
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher. An empty command disables delivery:
// Deliver becomes a no-op.
func NewDispatcher(command string, timeout time.Duration, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{command: command, timeout: timeout, logger: logger}
}

// Deliver executes the delivery command for a single notification. The
// notification's fields are passed to the command as THREADS_NOTIFY_* env vars.
func (d *Dispatcher) Deliver(ctx context.Context, n *model.Notification) error {
	if d.command == "" {
		return nil
	}

	env := map[string]string{
		"THREADS_NOTIFY_ID":        n.ID,
		"THREADS_NOTIFY_RECIPIENT": n.UserID,
		"THREADS_NOTIFY_TYPE":      string(n.Type),
		"THREADS_NOTIFY_POST":      n.PostID,
		"THREADS_NOTIFY_COMMENT":   n.CommentID,
		"THREADS_NOTIFY_ACTOR":     n.NotifierID,
	}

	result := Execute(ctx, d.command, d.timeout, env)
	if result.Err != nil {
		if result.Output != "" {
			return fmt.Errorf("delivery command: %w (output: %s)", result.Err, result.Output)
		}
		return fmt.Errorf("delivery command: %w", result.Err)
	}
	return nil
}

// StartSubscriber listens for notification events on the event bus and runs
// the delivery command for each. Delivery failures are logged, never
// propagated: a broken delivery command must not affect the service.
// It blocks until ctx is cancelled.
func (d *Dispatcher) StartSubscriber(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicNotificationCreated)
	if err != nil {
		return fmt.Errorf("notify: subscribe: %w", err)
	}
	defer cancel()

	d.logger.Info("notify: subscriber started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notify: subscriber stopping")
			return nil
		case raw, ok := <-ch:
			if !ok {
				d.logger.Info("notify: subscription channel closed")
				return nil
			}

			var event events.NotificationCreated
			if err := json.Unmarshal(raw, &event); err != nil {
				d.logger.Warn("notify: bad event payload", "err", err)
				continue
			}
			if event.Notification == nil {
				d.logger.Warn("notify: event without notification")
				continue
			}

			if err := d.Deliver(ctx, event.Notification); err != nil {
				d.logger.Warn("notify: delivery failed",
					"notification", event.Notification.ID,
					"recipient", event.Notification.UserID,
					"err", err)
				continue
			}
			d.logger.Info("notify: delivered",
				"notification", event.Notification.ID,
				"type", event.Notification.Type,
				"recipient", event.Notification.UserID)
		}
	}
}
