// Package aggregate ties the per-source adapters together behind one search
// entry point. It picks the adapter for the requested source, applies the
// uniform free-text filter on top of whatever source-specific narrowing the
// adapter already did, and produces the result set the selection and trash
// layers operate on.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/recsweep/recsweep/internal/logging"
	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/source"
	"github.com/recsweep/recsweep/internal/zoom"
)

// Params describes one search request.
type Params struct {
	Source records.Source
	From   time.Time
	To     time.Time

	// Query is the uniform free-text filter matched against each record's
	// haystack, applied after the source adapter returns.
	Query string

	// Meetings-only narrowing, ignored for the other sources.
	OwnerEmail string
	Topic      string
	AutoDelete *bool
}

// Aggregator routes searches to the per-source adapters. In demo mode the
// adapters are bypassed and a deterministic generator produces the records,
// keeping the rest of the pipeline identical.
type Aggregator struct {
	phone    *source.PhoneAdapter
	meetings *source.MeetingsAdapter
	cc       *source.CCAdapter
	demo     *DemoGenerator
	logger   logging.Logger
}

// New creates an aggregator over the three source adapters. demo may be nil.
func New(phone *source.PhoneAdapter, meetings *source.MeetingsAdapter, cc *source.CCAdapter, demo *DemoGenerator, logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetDefaultLogger()
	}
	return &Aggregator{
		phone:    phone,
		meetings: meetings,
		cc:       cc,
		demo:     demo,
		logger:   logger,
	}
}

// Search fetches and normalizes records for one source over a date range,
// then applies the free-text filter. TotalRecords in the returned result is
// the post-filter count; ServerTotal keeps the upstream count so callers
// can report filtered-vs-server numbers.
func (a *Aggregator) Search(ctx context.Context, p Params) (*source.Result, error) {
	if !p.Source.Valid() {
		return nil, fmt.Errorf("unknown source %q", p.Source)
	}
	if p.To.Before(p.From) {
		return nil, fmt.Errorf("invalid date range: to %s is before from %s",
			p.To.Format("2006-01-02"), p.From.Format("2006-01-02"))
	}

	res, err := a.fetch(ctx, p)
	if err != nil {
		return nil, err
	}

	if p.Query != "" {
		res.Records = records.FilterQuery(res.Records, p.Query)
	}
	records.SortByStartTime(res.Records)
	for i := range res.Records {
		res.Records[i].Index = i
	}
	res.TotalRecords = len(res.Records)

	if a.logger != nil {
		a.logger.DebugWithContext(ctx, "search complete: source=%s records=%d server_total=%d errors=%d",
			p.Source, res.TotalRecords, res.ServerTotal, len(res.Errors))
	}
	return res, nil
}

func (a *Aggregator) fetch(ctx context.Context, p Params) (*source.Result, error) {
	if a.demo != nil {
		return a.demo.Generate(p), nil
	}
	switch p.Source {
	case records.SourcePhone:
		return a.phone.Fetch(ctx, p.From, p.To)
	case records.SourceContactCenter:
		return a.cc.Fetch(ctx, p.From, p.To)
	case records.SourceMeetings:
		return a.meetings.Fetch(ctx, p.From, p.To, source.MeetingsFilters{
			OwnerEmail: p.OwnerEmail,
			Topic:      p.Topic,
			Text:       "", // free text is applied uniformly in Search
			AutoDelete: p.AutoDelete,
		})
	}
	return nil, fmt.Errorf("unknown source %q", p.Source)
}

// ListUsers returns the active account users, for the users debug view.
func (a *Aggregator) ListUsers(ctx context.Context) ([]zoom.User, error) {
	if a.demo != nil {
		return a.demo.Users(), nil
	}
	return a.meetings.ListActiveUsers(ctx)
}

// UserCounts returns per-user meeting counts over a date range, for the
// counts debug view.
func (a *Aggregator) UserCounts(ctx context.Context, from, to time.Time) (*source.CountsResult, error) {
	if a.demo != nil {
		return a.demo.UserCounts(from, to), nil
	}
	return a.meetings.UserCounts(ctx, from, to)
}
