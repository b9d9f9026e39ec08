package providers

import (
	"context"
	"errors"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
)

// ErrRecommendationUnauthorized indicates the model provider rejected our credentials.
var ErrRecommendationUnauthorized = errors.New("recommendation provider unauthorized")

// RecommendationProvider defines the interface for the speech/LLM service
// that turns a call recording into product recommendations.
type RecommendationProvider interface {
	// Transcribe converts recorded interview audio to text.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)

	// GenerateRecommendations produces exactly three products from an
	// interview transcript.
	GenerateRecommendations(ctx context.Context, transcript string) ([]entities.Product, error)
}
