package domain

import (
	"context"
	"time"
)

// Resource имя ресурса API.
type Resource string

const (
	ResourceClient  Resource = "client"
	ResourceProduct Resource = "product"
	ResourceOrder   Resource = "order"
)

// ChangeKind описывает вид изменения ресурса.
type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// ResourceEvent описывает факт изменения ресурса, публикуемый наружу после успешной записи.
type ResourceEvent struct {
	Resource   Resource
	Kind       ChangeKind
	ResourceID int64
	// Payload содержит транспортное представление ресурса (DTO) на момент события.
	Payload    any
	OccurredAt time.Time
}

// Type возвращает тип события вида "client.created".
func (e ResourceEvent) Type() string {
	return string(e.Resource) + "." + string(e.Kind)
}

// EventPublisher публикует события изменения ресурсов.
type EventPublisher interface {
	Publish(ctx context.Context, event ResourceEvent) error
}

// NoopPublisher используется, когда брокер не настроен.
type NoopPublisher struct{}

// Publish ничего не делает.
func (NoopPublisher) Publish(context.Context, ResourceEvent) error { return nil }
