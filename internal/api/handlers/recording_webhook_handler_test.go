package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velectro/voicelead/backend/internal/adapters/memory"
	"github.com/velectro/voicelead/backend/internal/api/handlers"
	"github.com/velectro/voicelead/backend/internal/domain/entities"
)

func postRecordingCallback(t *testing.T, handler *handlers.RecordingWebhookHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/recording-callback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler.HandleRecording(w, req)
	return w
}

func TestRecordingWebhookHandler_ProcessesCompletedRecording(t *testing.T) {
	store := memory.NewLeadStore()
	recommender := &stubRecommendationProvider{
		transcript: "wants a camera phone",
		products:   []entities.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
	}
	service := newTestService(store, &stubVoiceProvider{}, recommender)
	handler := handlers.NewRecordingWebhookHandler(service, nil)

	ctx := context.Background()
	lead, _ := store.Create(ctx, "Jane Smith", "(555) 123-4567")
	store.CreateRecommendation(ctx, lead.ID, "CA123")

	form := url.Values{}
	form.Set("CallSid", "CA123")
	form.Set("RecordingUrl", "https://api.twilio.com/rec/RE1")
	form.Set("RecordingStatus", "completed")

	w := postRecordingCallback(t, handler, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	// Processing runs in the background after the ACK.
	assert.Eventually(t, func() bool {
		rec, err := store.GetByLead(ctx, lead.ID)
		return err == nil && rec.Status == entities.RecommendationStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

func TestRecordingWebhookHandler_AcksUnknownCall(t *testing.T) {
	service := newTestService(memory.NewLeadStore(), &stubVoiceProvider{}, &stubRecommendationProvider{})
	handler := handlers.NewRecordingWebhookHandler(service, nil)

	form := url.Values{}
	form.Set("CallSid", "CA999")
	form.Set("RecordingUrl", "https://api.twilio.com/rec/RE1")
	form.Set("RecordingStatus", "completed")

	w := postRecordingCallback(t, handler, form)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestRecordingWebhookHandler_AcksInProgressStatus(t *testing.T) {
	store := memory.NewLeadStore()
	service := newTestService(store, &stubVoiceProvider{}, &stubRecommendationProvider{})
	handler := handlers.NewRecordingWebhookHandler(service, nil)

	ctx := context.Background()
	lead, _ := store.Create(ctx, "Jane Smith", "(555) 123-4567")
	store.CreateRecommendation(ctx, lead.ID, "CA123")

	form := url.Values{}
	form.Set("CallSid", "CA123")
	form.Set("RecordingUrl", "https://api.twilio.com/rec/RE1")
	form.Set("RecordingStatus", "in-progress")

	w := postRecordingCallback(t, handler, form)

	assert.Equal(t, http.StatusOK, w.Code)

	// Record must stay pending.
	rec, err := store.GetByLead(ctx, lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, entities.RecommendationStatusPending, rec.Status)
}

func TestRecordingWebhookHandler_AcksEmptyForm(t *testing.T) {
	service := newTestService(memory.NewLeadStore(), &stubVoiceProvider{}, &stubRecommendationProvider{})
	handler := handlers.NewRecordingWebhookHandler(service, nil)

	w := postRecordingCallback(t, handler, url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
