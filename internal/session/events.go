package session

import "sessiond/pkg/types"

// Event represents a coordinator lifecycle event or an engine result being
// forwarded to the shell. Minimal and stable: name + mode/engine plus
// optional fields via key/values.
type Event struct {
	Name   string         `json:"name"`
	Mode   types.Mode     `json:"mode,omitempty"`
	Engine string         `json:"engine,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// EventPublisher receives events from the coordinator. Implementations
// should be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
