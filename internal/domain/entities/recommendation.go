package entities

import (
	"time"
)

// RecommendationStatus represents the processing state of a recommendation record
type RecommendationStatus string

const (
	// RecommendationStatusPending means the interview call has been placed
	// but no recording has been processed yet.
	RecommendationStatusPending RecommendationStatus = "pending"

	// RecommendationStatusCompleted means transcript and products are set.
	RecommendationStatusCompleted RecommendationStatus = "completed"

	// RecommendationStatusFailed means recording processing was attempted
	// and gave up. Status polls still report in_progress for failed records;
	// the state exists for operators, not for the poller.
	RecommendationStatusFailed RecommendationStatus = "failed"
)

// Recommendation accumulates the transcript and product results for one lead.
// Transcript and Products transition together with Status in a single store
// write, so a reader never observes one without the other.
type Recommendation struct {
	ID         string               `json:"id"`
	LeadID     string               `json:"lead_id"`
	CallSID    string               `json:"call_sid"`
	Status     RecommendationStatus `json:"status"`
	Transcript *string              `json:"transcript,omitempty"`
	Products   []Product            `json:"products"`
	FailReason string               `json:"fail_reason,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

// Completed reports whether products are ready to serve.
func (r *Recommendation) Completed() bool {
	return r.Status == RecommendationStatusCompleted && len(r.Products) > 0
}

// Product is one recommended item with display and purchase metadata.
type Product struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	Price            string   `json:"price"`
	Rating           float64  `json:"rating"`
	Image            string   `json:"image"`
	Features         []string `json:"features"`
	AffiliateLink    string   `json:"affiliateLink"`
	AIRecommendation string   `json:"aiRecommendation"`
}
