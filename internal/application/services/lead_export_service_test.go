package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/velectro/voicelead/backend/internal/application/services"
)

type recordingSink struct {
	mu    sync.Mutex
	rows  [][]string
	fails int
}

func (s *recordingSink) AppendLead(ctx context.Context, name, phone string, submittedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fails > 0 {
		s.fails--
		return errors.New("sheets unavailable")
	}
	s.rows = append(s.rows, []string{name, phone, submittedAt.UTC().Format(time.RFC3339)})
	return nil
}

func (s *recordingSink) rowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func TestLeadExportService_ExportAsync(t *testing.T) {
	sink := &recordingSink{}
	service := services.NewLeadExportService(sink, nil)

	service.ExportAsync("Jane Smith", "(555) 123-4567", time.Now())

	assert.Eventually(t, func() bool {
		return sink.rowCount() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLeadExportService_RetriesTransientFailures(t *testing.T) {
	sink := &recordingSink{fails: 2}
	service := services.NewLeadExportService(sink, nil)

	service.ExportAsync("Jane Smith", "(555) 123-4567", time.Now())

	// Two failures then success fits inside the three-attempt budget.
	assert.Eventually(t, func() bool {
		return sink.rowCount() == 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestLeadExportService_NilSinkIsNoOp(t *testing.T) {
	service := services.NewLeadExportService(nil, nil)

	// Must not panic.
	service.ExportAsync("Jane Smith", "(555) 123-4567", time.Now())

	var nilService *services.LeadExportService
	nilService.ExportAsync("Jane Smith", "(555) 123-4567", time.Now())
}
