package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// HandlerFunc handles a published message.
type HandlerFunc func(ctx context.Context, routingKey string, payload []byte) error

// InProcessBus is an in-memory event bus for local mode (no RabbitMQ).
// Messages are delivered synchronously to registered handlers.
type InProcessBus struct {
	handlers []HandlerFunc
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewInProcessBus creates a new in-process event bus.
func NewInProcessBus(logger *slog.Logger) *InProcessBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessBus{logger: logger}
}

// Subscribe registers a handler for all published messages.
func (b *InProcessBus) Subscribe(handler HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, handler)
}

// Publish dispatches the message to all registered handlers synchronously.
// Handler errors are logged, not returned; local mode never fails a publish.
func (b *InProcessBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	b.mu.Lock()
	handlers := make([]HandlerFunc, len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, routingKey, payload); err != nil {
			b.logger.Error("event handler failed",
				"routing_key", routingKey,
				"error", err,
			)
		}
	}

	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error { return nil }
