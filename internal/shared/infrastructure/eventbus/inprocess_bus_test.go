package eventbus

import (
	"context"
	"errors"
	"testing"

	"github.com/felixgeelhaar/cadence/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcessBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to all subscribers", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		var gotKeys []string
		bus.Subscribe(func(_ context.Context, routingKey string, _ []byte) error {
			gotKeys = append(gotKeys, routingKey)
			return nil
		})
		bus.Subscribe(func(_ context.Context, routingKey string, _ []byte) error {
			gotKeys = append(gotKeys, routingKey)
			return nil
		})

		err := bus.Publish(ctx, "tracking.task.logged", []byte(`{}`))

		require.NoError(t, err)
		assert.Equal(t, []string{"tracking.task.logged", "tracking.task.logged"}, gotKeys)
	})

	t.Run("handler errors do not fail the publish", func(t *testing.T) {
		bus := NewInProcessBus(nil)

		called := 0
		bus.Subscribe(func(context.Context, string, []byte) error {
			called++
			return errors.New("handler error")
		})
		bus.Subscribe(func(context.Context, string, []byte) error {
			called++
			return nil
		})

		err := bus.Publish(ctx, "tracking.streak.updated", nil)

		require.NoError(t, err)
		assert.Equal(t, 2, called, "all handlers still run")
	})

	t.Run("publish with no subscribers is a no-op", func(t *testing.T) {
		bus := NewInProcessBus(nil)
		assert.NoError(t, bus.Publish(ctx, "tracking.break.logged", nil))
		assert.NoError(t, bus.Close())
	})
}

type recordingPublisher struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestPublishDomainEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes each event under its routing key", func(t *testing.T) {
		pub := &recordingPublisher{}
		events := []domain.DomainEvent{
			newTestEvent("tracking.task.logged"),
			newTestEvent("tracking.streak.updated"),
		}

		PublishDomainEvents(ctx, pub, nil, events)

		assert.Equal(t, []string{"tracking.task.logged", "tracking.streak.updated"}, pub.keys)
		for _, payload := range pub.payloads {
			assert.NotEmpty(t, payload)
		}
	})

	t.Run("nil publisher is ignored", func(t *testing.T) {
		PublishDomainEvents(ctx, nil, nil, []domain.DomainEvent{newTestEvent("x")})
	})

	t.Run("publish failures are swallowed", func(t *testing.T) {
		pub := &recordingPublisher{err: errors.New("broker down")}
		PublishDomainEvents(ctx, pub, nil, []domain.DomainEvent{newTestEvent("x")})
		assert.Empty(t, pub.keys)
	})
}

type testEvent struct {
	domain.BaseEvent
}

func newTestEvent(routingKey string) *testEvent {
	return &testEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "Test", routingKey)}
}
