package source

import (
	"context"
	"fmt"
	"time"

	"github.com/recsweep/recsweep/internal/pagination"
	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/zoom"
)

// CCAdapter fetches contact-center engagement recordings. Structurally like
// the phone adapter (single paginated fetch, no fan-out) but normalizes a
// different schema: the first consumer supplies the caller, the handling
// agent supplies the callee, and the queue supplies the grouping site.
type CCAdapter struct {
	client   zoom.RecordingClient
	pageSize int
	maxPages int
}

// NewCCAdapter creates a contact-center source adapter
func NewCCAdapter(client zoom.RecordingClient, pageSize, maxPages int) *CCAdapter {
	return &CCAdapter{
		client:   client,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// Fetch retrieves all contact-center recordings in [from, to], up to the page cap
func (a *CCAdapter) Fetch(ctx context.Context, from, to time.Time) (*Result, error) {
	res, err := pagination.FetchAll(ctx, a.maxPages, func(ctx context.Context, token string) (*zoom.CCRecordingsPage, string, error) {
		page, err := a.client.ListCCRecordings(ctx, zoom.PageParams{
			From:          &from,
			To:            &to,
			PageSize:      a.pageSize,
			NextPageToken: token,
		})
		if err != nil {
			return nil, "", err
		}
		return page, page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("contact center recordings fetch failed: %w", err)
	}

	result := &Result{Incomplete: res.TerminatedEarly}
	for _, page := range res.Pages {
		if page.TotalRecords > result.ServerTotal {
			result.ServerTotal = page.TotalRecords
		}
		for _, rec := range page.Recordings {
			result.Records = append(result.Records, normalizeCC(rec, len(result.Records)))
		}
	}
	result.TotalRecords = len(result.Records)

	return result, nil
}

// normalizeCC maps an upstream contact-center recording into the unified shape
func normalizeCC(rec zoom.CCRecording, index int) records.UnifiedRecording {
	var caller records.Party
	if len(rec.Consumers) > 0 {
		caller = records.Party{
			Name:   rec.Consumers[0].ConsumerName,
			Number: rec.Consumers[0].ConsumerNumber,
		}
	}

	return records.UnifiedRecording{
		Source:    records.SourceContactCenter,
		ID:        rec.RecordingID,
		StartTime: rec.StartTime,
		Duration:  rec.Duration,
		Caller:    caller,
		Callee: records.Party{
			Name: rec.UserDisplayName,
		},
		Owner: records.Owner{
			Type: "queue",
			ID:   rec.QueueID,
			Name: rec.QueueName,
		},
		QueueID:   rec.QueueID,
		QueueName: rec.QueueName,
		AgentName: rec.UserDisplayName,
		AgentMail: rec.UserEmail,
		Index:     index,
	}
}
