package events

import "context"

// NoopPublisher discards every event, used when cfg.Events.Enabled is
// false so the engine never depends on a broker being reachable.
type NoopPublisher struct{}

// Publish does nothing and never fails.
func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}
