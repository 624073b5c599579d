package service

import (
	"context"
	"strings"

	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/pkg/events"
	pktNats "workout-generator-be/pkg/nats"
)

// RemoteSubscriber receives events from other instances. *nats.Subscriber
// satisfies it.
type RemoteSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

type IEventBridgeService interface {
	Start(ctx context.Context) error
	Handle(ctx context.Context, event events.Event) error
}

// Durable names may not contain these characters.
var durableSafe = strings.NewReplacer(".", "-", "*", "-", ">", "-", " ", "-")

// eventBridgeService copies exercise events published by other instances
// onto the local bus, so their caches and websocket clients stay current.
type eventBridgeService struct {
	subscriber RemoteSubscriber
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewEventBridgeService(subscriber RemoteSubscriber, publisher IPublisherService, log logger.ILogger) IEventBridgeService {
	return &eventBridgeService{
		subscriber: subscriber,
		publisher:  publisher,
		logger:     log,
	}
}

func (b *eventBridgeService) Start(ctx context.Context) error {
	// One durable per instance: every instance must see every event.
	durable := "exercise-bridge-" + durableSafe.Replace(b.publisher.Origin())
	return b.subscriber.Subscribe(ctx, pktNats.SubjectPrefix+"EXERCISE_*", durable, b.Handle)
}

func (b *eventBridgeService) Handle(ctx context.Context, event events.Event) error {
	if events.StringField(event, "origin") == b.publisher.Origin() {
		return nil
	}

	b.logger.Debug("EVENTS", "Bridging remote event", map[string]interface{}{
		"type":   event.EventType(),
		"origin": events.StringField(event, "origin"),
	})
	return b.publisher.PublishLocal(ctx, event)
}
