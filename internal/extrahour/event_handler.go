package extrahour

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cloudnative-amadeus/extrahours/internal/core/events"
)

// EventHandler writes an audit line for every lifecycle event of a request.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleFiled(ctx context.Context, event events.Event) error {
	filed, ok := event.(*events.ExtraHourFiledEvent)
	if !ok {
		h.logger.Error("invalid event type for filed handler", "event_type", event.EventType())
		return fmt.Errorf("expected ExtraHourFiledEvent, got %T", event)
	}

	h.logger.Info("audit: extra hour request filed",
		"extra_hour_id", filed.ExtraHourID,
		"user_id", filed.UserID,
		"hours", filed.Hours,
		"type_id", filed.TypeID,
		"event_id", filed.EventID())
	return nil
}

func (h *EventHandler) HandleDecided(ctx context.Context, event events.Event) error {
	decided, ok := event.(*events.ExtraHourDecidedEvent)
	if !ok {
		h.logger.Error("invalid event type for decided handler", "event_type", event.EventType())
		return fmt.Errorf("expected ExtraHourDecidedEvent, got %T", event)
	}

	h.logger.Info("audit: extra hour request decided",
		"extra_hour_id", decided.ExtraHourID,
		"user_id", decided.UserID,
		"approver_id", decided.ApproverID,
		"status", decided.Status,
		"hours", decided.Hours,
		"event_id", decided.EventID())
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeExtraHourFiled, h.HandleFiled)
	eventBus.Subscribe(events.EventTypeExtraHourApproved, h.HandleDecided)
	eventBus.Subscribe(events.EventTypeExtraHourRejected, h.HandleDecided)

	h.logger.Info("extra hour audit handlers registered",
		"handlers", []string{
			events.EventTypeExtraHourFiled,
			events.EventTypeExtraHourApproved,
			events.EventTypeExtraHourRejected,
		})
}
