package repositories

import (
	"context"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
)

// LeadRepository defines the interface for lead storage operations.
type LeadRepository interface {
	Create(ctx context.Context, name, phone string) (*entities.Lead, error)
	GetByID(ctx context.Context, id string) (*entities.Lead, error)
	GetByPhone(ctx context.Context, phone string) (*entities.Lead, error)
}
