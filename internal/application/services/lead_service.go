package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
	"github.com/velectro/voicelead/backend/internal/domain/providers"
	"github.com/velectro/voicelead/backend/internal/domain/repositories"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
	"github.com/velectro/voicelead/backend/pkg/errors"
)

// External status values reported to polling clients.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusExpired    = "expired"
)

// LeadStatus is the polling view of a lead's interview progress.
type LeadStatus struct {
	Status             string `json:"status"`
	HasRecommendations bool   `json:"hasRecommendations"`
}

// RecommendationView is what a completed lead sees: their name and the
// generated product list.
type RecommendationView struct {
	Name     string             `json:"name"`
	Products []entities.Product `json:"products"`
}

// LeadService owns the lead lifecycle: submission, the outbound interview
// call, the recording webhook pipeline and the client-facing status and
// recommendation reads.
type LeadService struct {
	leads       repositories.LeadRepository
	recs        repositories.RecommendationRepository
	voice       providers.VoiceProvider
	recommender providers.RecommendationProvider
	export      *LeadExportService
	eventBus    providers.EventBus

	interviewTimeout time.Duration

	// callLocks serializes webhook processing per call SID so duplicate
	// deliveries never race each other into the store.
	callLocks sync.Map
}

// NewLeadService creates a lead service. export and eventBus may be nil;
// the corresponding side effects are skipped.
func NewLeadService(
	leads repositories.LeadRepository,
	recs repositories.RecommendationRepository,
	voice providers.VoiceProvider,
	recommender providers.RecommendationProvider,
	export *LeadExportService,
	eventBus providers.EventBus,
	interviewTimeout time.Duration,
) *LeadService {
	return &LeadService{
		leads:            leads,
		recs:             recs,
		voice:            voice,
		recommender:      recommender,
		export:           export,
		eventBus:         eventBus,
		interviewTimeout: interviewTimeout,
	}
}

// Submit validates the input, stores the lead, kicks off the background
// export and places the outbound interview call. A pending recommendation
// record is created keyed by the returned call SID.
func (s *LeadService) Submit(ctx context.Context, name, phone string) (*entities.Lead, error) {
	if err := entities.ValidateLeadInput(name, phone); err != nil {
		return nil, err
	}

	logger := observability.LoggerFromContext(ctx)

	lead, err := s.leads.Create(ctx, name, phone)
	if err != nil {
		return nil, err
	}

	s.export.ExportAsync(lead.Name, lead.Phone, lead.CreatedAt)

	callSID, err := s.voice.StartInterviewCall(ctx, lead.Phone, lead.ID)
	if err != nil {
		logger.Error().Err(err).Str("lead_id", lead.ID).Msg("Failed to start interview call")
		return nil, errors.NewExternalError("Failed to initiate call. Please try again.", err)
	}

	if _, err := s.recs.CreateRecommendation(ctx, lead.ID, callSID); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, lead.ID, entities.LeadEventCallInitiated)

	logger.Info().
		Str("lead_id", lead.ID).
		Str("call_sid", callSID).
		Msg("Interview call initiated")

	return lead, nil
}

// GetRecommendations returns the recommendation view for a lead. A record
// still in progress reads back with an empty product list; not found is
// reserved for leads or recommendation records that do not exist.
func (s *LeadService) GetRecommendations(ctx context.Context, leadID string) (*RecommendationView, error) {
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	rec, err := s.recs.GetByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	products := rec.Products
	if products == nil {
		products = []entities.Product{}
	}

	return &RecommendationView{
		Name:     lead.Name,
		Products: products,
	}, nil
}

// GetStatus reports interview progress for a lead. A pending record older
// than the interview timeout reads as expired; a failed record still reads
// as in progress because retries arrive via webhook redelivery.
func (s *LeadService) GetStatus(ctx context.Context, leadID string) (*LeadStatus, error) {
	rec, err := s.recs.GetByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if rec.Completed() {
		return &LeadStatus{Status: StatusCompleted, HasRecommendations: true}, nil
	}

	if rec.Status == entities.RecommendationStatusPending &&
		s.interviewTimeout > 0 &&
		time.Since(rec.CreatedAt) > s.interviewTimeout {
		return &LeadStatus{Status: StatusExpired}, nil
	}

	return &LeadStatus{Status: StatusInProgress}, nil
}

// HandleRecording processes a recording webhook: it fetches the audio,
// transcribes it and generates recommendations, then completes the record
// in one write. Deliveries for unknown or already-completed calls are
// ignored. Processing for the same call SID is serialized.
func (s *LeadService) HandleRecording(ctx context.Context, callSID, recordingURL, recordingStatus string) error {
	if recordingStatus != "" && recordingStatus != "completed" {
		return nil
	}
	if callSID == "" || recordingURL == "" {
		return nil
	}

	lockAny, _ := s.callLocks.LoadOrStore(callSID, &sync.Mutex{})
	lock := lockAny.(*sync.Mutex)
	lock.Lock()
	defer lock.Unlock()

	logger := observability.LoggerFromContext(ctx).With().
		Str("call_sid", callSID).
		Logger()

	rec, err := s.recs.GetByCallSID(ctx, callSID)
	if err != nil {
		logger.Warn().Err(err).Msg("Recording webhook for unknown call")
		return err
	}
	if rec.Completed() {
		logger.Debug().Msg("Recording webhook ignored, record already completed")
		return nil
	}

	audio, err := s.voice.FetchRecording(ctx, recordingURL)
	if err != nil {
		return s.fail(ctx, &logger, rec, "Failed to download recording", err)
	}

	transcript, err := s.recommender.Transcribe(ctx, audio, callSID+".mp3")
	if err != nil {
		return s.fail(ctx, &logger, rec, "Failed to transcribe recording", err)
	}

	products, err := s.recommender.GenerateRecommendations(ctx, transcript)
	if err != nil {
		return s.fail(ctx, &logger, rec, "Failed to generate recommendations", err)
	}

	if _, err := s.recs.Complete(ctx, rec.ID, transcript, products); err != nil {
		return err
	}

	s.publishEvent(ctx, rec.LeadID, entities.LeadEventRecommendationsReady)

	logger.Info().
		Str("lead_id", rec.LeadID).
		Int("products", len(products)).
		Msg("Recommendations generated")

	return nil
}

func (s *LeadService) fail(ctx context.Context, logger *zerolog.Logger, rec *entities.Recommendation, reason string, cause error) error {
	logger.Error().Err(cause).Msg(reason)

	if _, err := s.recs.Fail(ctx, rec.ID, reason); err != nil {
		return err
	}
	s.publishEvent(ctx, rec.LeadID, entities.LeadEventRecommendationsFailed)

	return errors.NewExternalError(reason, cause)
}

// publishEvent broadcasts a lifecycle event for SSE subscribers. Publish
// failures are logged and dropped; the bus is optional.
func (s *LeadService) publishEvent(ctx context.Context, leadID string, eventType entities.LeadEventType) {
	if s.eventBus == nil {
		return
	}

	event := &entities.LeadEvent{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, providers.GetLeadChannel(leadID), event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("lead_id", leadID).
			Str("event_type", string(eventType)).
			Msg("Failed to publish lead event")
	}
}
