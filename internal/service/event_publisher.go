package service

import (
	"context"

	"healthcare-records/internal/domain/entity"
)

// EventPublisher delivers committed domain events to downstream consumers.
type EventPublisher interface {
	PublishMappingEvent(ctx context.Context, event entity.MappingEvent) error
}

// JSONPublisher is the transport contract satisfied by the message broker adapter.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, messageType string, body any) error
}

type brokerEventPublisher struct {
	publisher JSONPublisher
}

func NewEventPublisher(publisher JSONPublisher) EventPublisher {
	if publisher == nil {
		return NoopEventPublisher{}
	}
	return &brokerEventPublisher{publisher: publisher}
}

func (p *brokerEventPublisher) PublishMappingEvent(ctx context.Context, event entity.MappingEvent) error {
	return p.publisher.PublishJSON(ctx, event.Type, event)
}

// NoopEventPublisher is used when no broker is configured.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishMappingEvent(context.Context, entity.MappingEvent) error {
	return nil
}
