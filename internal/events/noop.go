package events

import "context"

// NoopPublisher discards every event. The server falls back to it when no
// NATS URL is configured, so the write paths never have to branch on
// whether a bus exists.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, any) error { return nil }

func (NoopPublisher) Close() error { return nil }
