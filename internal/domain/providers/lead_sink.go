package providers

import (
	"context"
	"time"
)

// LeadSink defines the interface for append-only lead logging
// (a spreadsheet row per submission). Appends are best-effort: callers
// never fail a submission on a sink error.
type LeadSink interface {
	AppendLead(ctx context.Context, name, phone string, submittedAt time.Time) error
}
