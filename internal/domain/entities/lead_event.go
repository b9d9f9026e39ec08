package entities

import "time"

// LeadEventType classifies lifecycle events published on the event bus
type LeadEventType string

const (
	LeadEventCallInitiated         LeadEventType = "call_initiated"
	LeadEventRecommendationsReady  LeadEventType = "recommendations_ready"
	LeadEventRecommendationsFailed LeadEventType = "recommendations_failed"
)

// LeadEvent is broadcast to SSE subscribers when a lead progresses.
type LeadEvent struct {
	ID        string        `json:"id"`
	LeadID    string        `json:"lead_id"`
	EventType LeadEventType `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
}
