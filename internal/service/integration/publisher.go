package integration

import (
	"context"

	"github.com/rs/zerolog"
)

// EventPublisher sends domain events keyed by routing key.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Close() error
}

type noopPublisher struct {
	logger zerolog.Logger
}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher(logger zerolog.Logger) EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.logger.Debug().Str("routing_key", routingKey).Msg("Event publishing disabled")
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
