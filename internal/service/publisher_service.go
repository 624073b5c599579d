package service

import (
	"context"
	"encoding/json"
	"fmt"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// RemotePublisher forwards events to other instances. *nats.Publisher
// satisfies it.
type RemotePublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IPublisherService interface {
	// Publish delivers the event to the local bus and, when configured, to
	// other instances.
	Publish(ctx context.Context, event events.Event) error
	// PublishLocal delivers the event to this instance only.
	PublishLocal(ctx context.Context, event events.Event) error
	// Origin identifies this instance in published events.
	Origin() string
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	remote    RemotePublisher
	origin    string
	logger    logger.ILogger
}

// NewPublisherService publishes to topicName on publisher. remote may be nil
// when no cross-instance bus is reachable.
func NewPublisherService(
	topicName string,
	publisher message.Publisher,
	remote RemotePublisher,
	origin string,
	log logger.ILogger,
) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		remote:    remote,
		origin:    origin,
		logger:    log,
	}
}

func (p *publisherService) Origin() string {
	return p.origin
}

func (p *publisherService) Publish(ctx context.Context, event events.Event) error {
	if err := p.PublishLocal(ctx, event); err != nil {
		return err
	}

	if p.remote != nil {
		// The local bus already has the event; a remote failure only delays
		// other instances until their cache TTL runs out.
		if err := p.remote.Publish(ctx, event); err != nil {
			p.logger.Warn("EVENTS", "Failed to publish event to NATS", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
	return nil
}

func (p *publisherService) PublishLocal(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(toEventMessage(event))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.EventType(), err)
	}
	return nil
}

func toEventMessage(event events.Event) dto.ExerciseEventMessage {
	id, _ := uuid.Parse(events.StringField(event, "exercise_id"))
	return dto.ExerciseEventMessage{
		Type:       event.EventType(),
		ExerciseId: id,
		Name:       events.StringField(event, "name"),
		Origin:     events.StringField(event, "origin"),
		OccurredAt: event.Timestamp(),
	}
}
