package services

import (
	"context"
	"time"

	"github.com/velectro/voicelead/backend/internal/domain/providers"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
	"github.com/velectro/voicelead/backend/pkg/retry"
)

const exportTimeout = 30 * time.Second

// LeadExportService pushes captured leads to an external sink. Exports run
// in the background and never block or fail the submission that triggered
// them.
type LeadExportService struct {
	sink    providers.LeadSink
	metrics *observability.Metrics
}

// NewLeadExportService creates a lead export service backed by the given sink.
// metrics may be nil.
func NewLeadExportService(sink providers.LeadSink, metrics *observability.Metrics) *LeadExportService {
	return &LeadExportService{sink: sink, metrics: metrics}
}

// ExportAsync appends the lead to the sink in a background goroutine with
// retries. Failures are logged and counted but otherwise dropped.
func (s *LeadExportService) ExportAsync(name, phone string, submittedAt time.Time) {
	if s == nil || s.sink == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		logger := observability.GetLogger().With().
			Str("component", "lead_export").
			Str("phone", phone).
			Logger()

		err := retry.Do(ctx, retry.DefaultConfig(), func() error {
			return s.sink.AppendLead(ctx, name, phone, submittedAt)
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Lead export failed after retries")
			observability.RecordLeadExportMetric(ctx, s.metrics, false)
			return
		}

		logger.Debug().Msg("Lead exported")
		observability.RecordLeadExportMetric(ctx, s.metrics, true)
	}()
}
