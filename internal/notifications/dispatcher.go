package notifications

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event is the envelope every live feed message uses.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Dispatcher routes board events to live feed clients. With Redis every instance
// receives events through its subscriber; without it events go straight to the
// local hub.
type Dispatcher struct {
	notifier *Notifier
	hub      *Hub
}

// NewDispatcher creates a dispatcher. Either argument may be nil.
func NewDispatcher(notifier *Notifier, hub *Hub) *Dispatcher {
	return &Dispatcher{notifier: notifier, hub: hub}
}

// Publish encodes and delivers an event.
func (d *Dispatcher) Publish(ctx context.Context, eventType string, payload any) error {
	if d == nil {
		return nil
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if d.notifier.Enabled() {
		return d.notifier.PublishBroadcast(ctx, string(data))
	}
	if d.hub != nil {
		d.hub.BroadcastAll(string(data))
	}
	return nil
}
