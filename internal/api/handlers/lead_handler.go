package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velectro/voicelead/backend/internal/application/services"
	apperrors "github.com/velectro/voicelead/backend/pkg/errors"
)

// LeadHandler handles lead submission and recommendation reads
type LeadHandler struct {
	service *services.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(service *services.LeadService) *LeadHandler {
	return &LeadHandler{service: service}
}

type submitRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Submit handles POST /api/submit
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.service.Submit(r.Context(), req.Name, req.Phone)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"userId":  lead.ID,
		"message": "Call initiated successfully",
	})
}

// GetRecommendations handles GET /api/recs/{userId}
func (h *LeadHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	leadID := r.PathValue("userId")
	if leadID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	view, err := h.service.GetRecommendations(r.Context(), leadID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":     map[string]string{"name": view.Name},
		"products": view.Products,
	})
}

// GetCallStatus handles GET /api/call-status/{userId}
func (h *LeadHandler) GetCallStatus(w http.ResponseWriter, r *http.Request) {
	leadID := r.PathValue("userId")
	if leadID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	status, err := h.service.GetStatus(r.Context(), leadID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, status)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps application error types to HTTP responses.
// Validation errors carry their per-field details.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeValidation:
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  appErr.Message,
			"errors": appErr.Fields,
		})
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusInternalServerError, appErr.Message)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
