package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hrops/backoffice/internal/core/events"
)

// Sender delivers a best-effort message to a user. Implementations must not
// block the calling workflow; errors are logged by the dispatcher and dropped.
type Sender interface {
	Send(ctx context.Context, recipientID int64, subject, body string) error
}

// LogSender writes notifications to the log. Stands in for mail/chat
// transports in development.
type LogSender struct {
	Logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (s *LogSender) Send(_ context.Context, recipientID int64, subject, body string) error {
	s.Logger.Info("notification sent",
		"recipient_id", recipientID,
		"subject", subject,
		"body", body)
	return nil
}

// Dispatcher translates lifecycle events into user notifications.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Register subscribes the dispatcher to advance and increment lifecycle events.
func (d *Dispatcher) Register(bus *events.EventBus) {
	bus.Subscribe(events.EventAdvanceApproved, d.onAdvanceApproved)
	bus.Subscribe(events.EventAdvanceRejected, d.onAdvanceRejected)
	bus.Subscribe(events.EventIncrementApproved, d.onIncrementApproved)
	bus.Subscribe(events.EventIncrementRejected, d.onIncrementRejected)
	bus.Subscribe(events.EventIncrementApplied, d.onIncrementApplied)
}

func (d *Dispatcher) onAdvanceApproved(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	employeeID := asInt64(data["employee_id"])
	return d.sender.Send(ctx, employeeID,
		"Advance approved",
		fmt.Sprintf("Your advance request #%d has been approved.", asInt64(data["advance_id"])))
}

func (d *Dispatcher) onAdvanceRejected(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	reason, _ := data["reason"].(string)
	return d.sender.Send(ctx, asInt64(data["employee_id"]),
		"Advance rejected",
		fmt.Sprintf("Your advance request #%d was rejected: %s", asInt64(data["advance_id"]), reason))
}

func (d *Dispatcher) onIncrementApproved(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return d.sender.Send(ctx, asInt64(data["employee_id"]),
		"Salary increment approved",
		fmt.Sprintf("Salary increment #%d has been approved.", asInt64(data["increment_id"])))
}

func (d *Dispatcher) onIncrementRejected(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	reason, _ := data["reason"].(string)
	return d.sender.Send(ctx, asInt64(data["employee_id"]),
		"Salary increment rejected",
		fmt.Sprintf("Salary increment #%d was rejected: %s", asInt64(data["increment_id"]), reason))
}

func (d *Dispatcher) onIncrementApplied(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.EventType())
	}
	return d.sender.Send(ctx, asInt64(data["employee_id"]),
		"Salary updated",
		fmt.Sprintf("Salary increment #%d is now in effect.", asInt64(data["increment_id"])))
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
