package service

import (
	"context"
	"encoding/json"

	"workout-generator-be/internal/dto"
	"workout-generator-be/internal/pkg/logger"
	"workout-generator-be/internal/pkg/metrics"
	"workout-generator-be/internal/repository/cache"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Broadcaster pushes a payload to every live client. *websocket.Hub
// satisfies it.
type Broadcaster interface {
	Broadcast(payload []byte)
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber    message.Subscriber
	topicName     string
	snapshotCache cache.SnapshotCache
	broadcaster   Broadcaster
	metrics       *metrics.Metrics
	logger        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	snapshotCache cache.SnapshotCache,
	broadcaster Broadcaster,
	m *metrics.Metrics,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		topicName:     topicName,
		snapshotCache: snapshotCache,
		broadcaster:   broadcaster,
		metrics:       m,
		logger:        log,
	}
}

// Consume subscribes to the exercise topic and handles messages in the
// background until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ExerciseEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		// Invalid messages would be redelivered forever.
		msg.Ack()
		return
	}

	cs.snapshotCache.Invalidate(ctx)
	if cs.broadcaster != nil {
		cs.broadcaster.Broadcast(msg.Payload)
	}
	cs.metrics.EventsHandled.WithLabelValues(payload.Type).Inc()

	cs.logger.Debug("EVENTS", "Exercise event handled", map[string]interface{}{
		"type":        payload.Type,
		"exercise_id": payload.ExerciseId.String(),
		"origin":      payload.Origin,
	})
	msg.Ack()
}
