package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/velectro/voicelead/backend/internal/application/services"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
)

// processingTimeout bounds one webhook's download-transcribe-generate run.
const processingTimeout = 3 * time.Minute

// RecordingWebhookHandler receives recording-status callbacks from the
// voice provider and feeds them into the recommendation pipeline.
type RecordingWebhookHandler struct {
	service *services.LeadService
	metrics *observability.Metrics
}

// NewRecordingWebhookHandler creates a new recording webhook handler
func NewRecordingWebhookHandler(service *services.LeadService, metrics *observability.Metrics) *RecordingWebhookHandler {
	return &RecordingWebhookHandler{service: service, metrics: metrics}
}

// HandleRecording handles POST /api/recording-callback. The provider is
// always acknowledged with 200 so it stops redelivering; processing runs in
// the background because transcription and generation take longer than the
// provider's webhook timeout.
func (h *RecordingWebhookHandler) HandleRecording(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("Malformed recording webhook")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
		return
	}

	callSID := r.FormValue("CallSid")
	recordingURL := r.FormValue("RecordingUrl")
	recordingStatus := r.FormValue("RecordingStatus")

	observability.LoggerFromContext(r.Context()).Info().
		Str("call_sid", callSID).
		Str("recording_status", recordingStatus).
		Msg("Recording webhook received")

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), processingTimeout)
		defer cancel()

		err := h.service.HandleRecording(ctx, callSID, recordingURL, recordingStatus)

		outcome := "processed"
		if err != nil {
			outcome = "failed"
		}
		observability.RecordWebhookMetric(ctx, h.metrics, outcome)
	}()

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
