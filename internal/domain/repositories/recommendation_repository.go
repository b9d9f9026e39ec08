package repositories

import (
	"context"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
)

// RecommendationRepository defines the interface for recommendation record operations.
type RecommendationRepository interface {
	// CreateRecommendation stores a new pending record tied to a lead and
	// its call SID.
	CreateRecommendation(ctx context.Context, leadID, callSID string) (*entities.Recommendation, error)

	// GetByLead returns the record owned by a lead.
	GetByLead(ctx context.Context, leadID string) (*entities.Recommendation, error)

	// GetByCallSID correlates an inbound recording webhook to its record.
	GetByCallSID(ctx context.Context, callSID string) (*entities.Recommendation, error)

	// Complete sets transcript, products and the completed status in one
	// atomic write.
	Complete(ctx context.Context, id, transcript string, products []entities.Product) (*entities.Recommendation, error)

	// Fail marks the record as permanently incomplete.
	Fail(ctx context.Context, id, reason string) (*entities.Recommendation, error)
}
