package kafka

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// TopicResourceEvents топик событий изменения клиентов, товаров и заказов.
const TopicResourceEvents = "bakery.resource.events"

// Kafka headers
const (
	HeaderEventType = "x-event-type"
	HeaderResource  = "x-resource"
)

// ResourceEvent JSON-конверт события изменения ресурса.
type ResourceEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Resource   string    `json:"resource"`
	ResourceID int64     `json:"resource_id"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// NewResourceEvent строит конверт из доменного события.
func NewResourceEvent(ev domain.ResourceEvent) *ResourceEvent {
	ts := ev.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &ResourceEvent{
		EventID:    uuid.NewString(),
		EventType:  ev.Type(),
		Resource:   string(ev.Resource),
		ResourceID: ev.ResourceID,
		Timestamp:  ts,
		Payload:    ev.Payload,
	}
}

// PartitionKey гарантирует порядок событий одного ресурса внутри партиции.
func PartitionKey(resource domain.Resource, id int64) string {
	return fmt.Sprintf("%s:%d", resource, id)
}
