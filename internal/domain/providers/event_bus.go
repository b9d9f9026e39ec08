package providers

import (
	"context"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to lead events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.LeadEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.LeadEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannelLeadPrefix is the prefix for lead-specific channels
const EventChannelLeadPrefix = "lead:"

// GetLeadChannel returns the channel name for a specific lead
func GetLeadChannel(leadID string) string {
	return EventChannelLeadPrefix + leadID
}
