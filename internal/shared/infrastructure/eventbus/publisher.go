package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishDomainEvents marshals and publishes a batch of domain events.
// Delivery is best-effort: failures are logged, not returned, because
// derived-state notifications must never fail the originating request.
func PublishDomainEvents(ctx context.Context, pub Publisher, logger *slog.Logger, events []domain.DomainEvent) {
	if pub == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			logger.Error("failed to marshal domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
			continue
		}
		if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
			logger.Error("failed to publish domain event",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}
}

// NoopPublisher is a no-op publisher for testing/development.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs and drops the message.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("noop publish", "routing_key", routingKey, "size", len(payload))
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error { return nil }
