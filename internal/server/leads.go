package server

import (
	"context"

	"github.com/revaya/roicalc/internal/submission"
)

// LeadRecorder persists leads without blocking the request.
type LeadRecorder interface {
	Submit(rec submission.Record)
	MarkDownloaded(email string)
}

// LeadLister reads persisted leads for the admin dashboard.
type LeadLister interface {
	List(ctx context.Context, limit int) ([]submission.Record, error)
	ListByEmail(ctx context.Context, email string) ([]submission.Record, error)
}

// PublishLeads returns a dispatcher listener that forwards lead events to
// the admin feed.
func PublishLeads(b *Broker) func(submission.Event) {
	return func(e submission.Event) {
		b.Publish(topicLeads, e.Type, e)
	}
}
