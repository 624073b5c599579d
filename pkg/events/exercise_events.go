package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExerciseCreated = "EXERCISE_CREATED"
	ExerciseUpdated = "EXERCISE_UPDATED"
)

// NewExerciseEvent builds the payload shared by every exercise event. origin
// names the instance that produced it so bridges can drop their own echoes.
func NewExerciseEvent(eventType string, exerciseId uuid.UUID, name, origin string) BaseEvent {
	now := time.Now().UTC()
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"exercise_id": exerciseId.String(),
			"name":        name,
			"origin":      origin,
			"entity_type": "exercise",
			"occurred_at": now.Format(time.RFC3339Nano),
		},
		OccurredAt: now,
	}
}

// StringField reads a string entry from an event payload.
func StringField(e Event, key string) string {
	if v, ok := e.Payload()[key].(string); ok {
		return v
	}
	return ""
}
