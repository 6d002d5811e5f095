package events

import "context"

// NoopPublisher discards every event. It stands in for NATS when no
// broker is configured, so callers never branch on a nil publisher.
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
