package entities_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/velectro/voicelead/backend/internal/domain/entities"
	apperrors "github.com/velectro/voicelead/backend/pkg/errors"
)

func TestValidateLeadInput(t *testing.T) {
	tests := []struct {
		name       string
		leadName   string
		phone      string
		wantErr    bool
		wantFields []string
	}{
		{
			name:     "valid input",
			leadName: "Jane Smith",
			phone:    "(555) 123-4567",
			wantErr:  false,
		},
		{
			name:       "empty name",
			leadName:   "",
			phone:      "(555) 123-4567",
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name:       "whitespace name",
			leadName:   "   ",
			phone:      "(555) 123-4567",
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name:       "name too long",
			leadName:   strings.Repeat("a", 121),
			phone:      "(555) 123-4567",
			wantErr:    true,
			wantFields: []string{"name"},
		},
		{
			name:       "phone without parentheses",
			leadName:   "Jane Smith",
			phone:      "555 123-4567",
			wantErr:    true,
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with dots",
			leadName:   "Jane Smith",
			phone:      "(555).123.4567",
			wantErr:    true,
			wantFields: []string{"phone"},
		},
		{
			name:       "phone with trailing digits",
			leadName:   "Jane Smith",
			phone:      "(555) 123-45678",
			wantErr:    true,
			wantFields: []string{"phone"},
		},
		{
			name:       "both fields invalid",
			leadName:   "",
			phone:      "5551234567",
			wantErr:    true,
			wantFields: []string{"name", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := entities.ValidateLeadInput(tt.leadName, tt.phone)

			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var appErr *apperrors.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
			assert.Equal(t, "Validation failed", appErr.Message)

			var got []string
			for _, f := range appErr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestRecommendation_Completed(t *testing.T) {
	transcript := "some transcript"

	t.Run("pending record without products", func(t *testing.T) {
		rec := &entities.Recommendation{Status: entities.RecommendationStatusPending}
		assert.False(t, rec.Completed())
	})

	t.Run("completed with products", func(t *testing.T) {
		rec := &entities.Recommendation{
			Status:     entities.RecommendationStatusCompleted,
			Transcript: &transcript,
			Products:   []entities.Product{{ID: "p1", Name: "Laptop"}},
		}
		assert.True(t, rec.Completed())
	})

	t.Run("completed status but empty products is not served", func(t *testing.T) {
		rec := &entities.Recommendation{Status: entities.RecommendationStatusCompleted}
		assert.False(t, rec.Completed())
	})

	t.Run("failed record", func(t *testing.T) {
		rec := &entities.Recommendation{
			Status:     entities.RecommendationStatusFailed,
			FailReason: "transcription failed",
			Products:   []entities.Product{{ID: "p1"}},
		}
		assert.False(t, rec.Completed())
	})
}
