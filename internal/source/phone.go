package source

import (
	"context"
	"fmt"
	"time"

	"github.com/recsweep/recsweep/internal/pagination"
	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/zoom"
)

// PhoneAdapter fetches Zoom Phone call recordings via a single paginated
// fetch against the phone recordings collection
type PhoneAdapter struct {
	client   zoom.RecordingClient
	pageSize int
	maxPages int
}

// NewPhoneAdapter creates a phone source adapter
func NewPhoneAdapter(client zoom.RecordingClient, pageSize, maxPages int) *PhoneAdapter {
	return &PhoneAdapter{
		client:   client,
		pageSize: pageSize,
		maxPages: maxPages,
	}
}

// Fetch retrieves all phone recordings in [from, to], up to the page cap.
// There is one logical connection, so any page error fails the whole fetch.
func (a *PhoneAdapter) Fetch(ctx context.Context, from, to time.Time) (*Result, error) {
	res, err := pagination.FetchAll(ctx, a.maxPages, func(ctx context.Context, token string) (*zoom.PhoneRecordingsPage, string, error) {
		page, err := a.client.ListPhoneRecordings(ctx, zoom.PageParams{
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
		return nil, fmt.Errorf("phone recordings fetch failed: %w", err)
	}

	result := &Result{Incomplete: res.TerminatedEarly}
	for _, page := range res.Pages {
		if page.TotalRecords > result.ServerTotal {
			result.ServerTotal = page.TotalRecords
		}
		for _, rec := range page.Recordings {
			result.Records = append(result.Records, normalizePhone(rec, len(result.Records)))
		}
	}
	result.TotalRecords = len(result.Records)

	return result, nil
}

// normalizePhone maps an upstream phone recording into the unified shape
func normalizePhone(rec zoom.PhoneRecording, index int) records.UnifiedRecording {
	return records.UnifiedRecording{
		Source:    records.SourcePhone,
		ID:        rec.ID,
		StartTime: rec.DateTime,
		Duration:  rec.Duration,
		Caller: records.Party{
			Name:   rec.CallerName,
			Number: rec.CallerNumber,
		},
		Callee: records.Party{
			Name:   rec.CalleeName,
			Number: rec.CalleeNumber,
		},
		Owner: records.Owner{
			Type: rec.Owner.Type,
			ID:   rec.Owner.ID,
			Name: rec.Owner.Name,
		},
		Index: index,
	}
}
