package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
	apperrors "github.com/velectro/voicelead/backend/pkg/errors"
)

// LeadStore is an in-memory implementation of the lead and recommendation
// repositories. Records live for the process lifetime; there is no eviction.
// All reads return copies so callers never share mutable state with the store.
type LeadStore struct {
	mu              sync.RWMutex
	leads           map[string]*entities.Lead
	recommendations map[string]*entities.Recommendation
}

// NewLeadStore creates an empty store.
func NewLeadStore() *LeadStore {
	return &LeadStore{
		leads:           make(map[string]*entities.Lead),
		recommendations: make(map[string]*entities.Recommendation),
	}
}

// Create stores a new lead.
func (s *LeadStore) Create(ctx context.Context, name, phone string) (*entities.Lead, error) {
	lead := &entities.Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.leads[lead.ID] = lead
	s.mu.Unlock()

	return copyLead(lead), nil
}

// GetByID returns a lead by id.
func (s *LeadStore) GetByID(ctx context.Context, id string) (*entities.Lead, error) {
	s.mu.RLock()
	lead, ok := s.leads[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewNotFoundError("lead not found")
	}
	return copyLead(lead), nil
}

// GetByPhone returns the first lead with a matching phone number.
func (s *LeadStore) GetByPhone(ctx context.Context, phone string) (*entities.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lead := range s.leads {
		if lead.Phone == phone {
			return copyLead(lead), nil
		}
	}
	return nil, apperrors.NewNotFoundError("lead not found")
}

// CreateRecommendation stores a new pending recommendation record.
func (s *LeadStore) CreateRecommendation(ctx context.Context, leadID, callSID string) (*entities.Recommendation, error) {
	now := time.Now()
	rec := &entities.Recommendation{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		CallSID:   callSID,
		Status:    entities.RecommendationStatusPending,
		Products:  []entities.Product{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.recommendations[rec.ID] = rec
	s.mu.Unlock()

	return copyRecommendation(rec), nil
}

// GetByLead returns the recommendation record owned by a lead. Lookup is a
// linear scan; cardinality stays low for the process lifetime.
func (s *LeadStore) GetByLead(ctx context.Context, leadID string) (*entities.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.recommendations {
		if rec.LeadID == leadID {
			return copyRecommendation(rec), nil
		}
	}
	return nil, apperrors.NewNotFoundError("recommendation not found")
}

// GetByCallSID correlates an inbound webhook to its record.
func (s *LeadStore) GetByCallSID(ctx context.Context, callSID string) (*entities.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.recommendations {
		if rec.CallSID == callSID {
			return copyRecommendation(rec), nil
		}
	}
	return nil, apperrors.NewNotFoundError("recommendation not found")
}

// Complete sets transcript, products and status in one write under the store
// lock. A concurrent reader sees either the pending record or the finished
// one, never a partial update.
func (s *LeadStore) Complete(ctx context.Context, id, transcript string, products []entities.Product) (*entities.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recommendation not found")
	}

	t := transcript
	rec.Transcript = &t
	rec.Products = append([]entities.Product(nil), products...)
	rec.Status = entities.RecommendationStatusCompleted
	rec.FailReason = ""
	rec.UpdatedAt = time.Now()

	return copyRecommendation(rec), nil
}

// Fail marks the record as permanently incomplete.
func (s *LeadStore) Fail(ctx context.Context, id, reason string) (*entities.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.recommendations[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recommendation not found")
	}

	// A completed record never regresses to failed on webhook redelivery.
	if rec.Status == entities.RecommendationStatusCompleted {
		return copyRecommendation(rec), nil
	}

	rec.Status = entities.RecommendationStatusFailed
	rec.FailReason = reason
	rec.UpdatedAt = time.Now()

	return copyRecommendation(rec), nil
}

func copyLead(lead *entities.Lead) *entities.Lead {
	c := *lead
	return &c
}

func copyRecommendation(rec *entities.Recommendation) *entities.Recommendation {
	c := *rec
	if rec.Transcript != nil {
		t := *rec.Transcript
		c.Transcript = &t
	}
	c.Products = append([]entities.Product(nil), rec.Products...)
	return &c
}
