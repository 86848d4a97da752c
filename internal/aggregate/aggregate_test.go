package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/recsweep/recsweep/internal/records"
)

var (
	demoFrom = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	demoTo   = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
)

func demoAggregator(seed int64) *Aggregator {
	return New(nil, nil, nil, NewDemoGenerator(seed), nil)
}

func TestSearchValidation(t *testing.T) {
	agg := demoAggregator(0)

	tests := []struct {
		name   string
		params Params
	}{
		{name: "unknown source", params: Params{Source: "email", From: demoFrom, To: demoTo}},
		{name: "empty source", params: Params{From: demoFrom, To: demoTo}},
		{name: "inverted range", params: Params{Source: records.SourcePhone, From: demoTo, To: demoFrom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := agg.Search(context.Background(), tt.params); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

// TestSearchDemoDeterministic verifies demo mode yields identical results
// for identical requests, so selections made against one search remain valid
// against its repeat.
func TestSearchDemoDeterministic(t *testing.T) {
	agg := demoAggregator(42)
	p := Params{Source: records.SourceMeetings, From: demoFrom, To: demoTo}

	first, err := agg.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	second, err := agg.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("second search failed: %v", err)
	}

	if len(first.Records) == 0 {
		t.Fatal("demo search returned no records")
	}
	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		if first.Records[i].SelectionKey() != second.Records[i].SelectionKey() {
			t.Errorf("record %d keys differ: %q vs %q",
				i, first.Records[i].SelectionKey(), second.Records[i].SelectionKey())
		}
	}
}

func TestSearchDemoSources(t *testing.T) {
	agg := demoAggregator(0)

	for _, src := range []records.Source{records.SourcePhone, records.SourceMeetings, records.SourceContactCenter} {
		t.Run(string(src), func(t *testing.T) {
			res, err := agg.Search(context.Background(), Params{Source: src, From: demoFrom, To: demoTo})
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}
			if len(res.Records) == 0 {
				t.Fatal("no records generated")
			}
			for i, r := range res.Records {
				if r.Source != src {
					t.Errorf("record %d carries source %q", i, r.Source)
				}
				if r.StartTime.Before(demoFrom) || r.StartTime.After(demoTo) {
					t.Errorf("record %d outside the range: %v", i, r.StartTime)
				}
				if r.Index != i {
					t.Errorf("record %d carries index %d", i, r.Index)
				}
				if i > 0 && r.StartTime.After(res.Records[i-1].StartTime) {
					t.Errorf("records not sorted newest first at %d", i)
				}
			}
		})
	}
}

// TestSearchFreeTextFilter verifies the uniform query narrows results and
// updates the post-filter count while keeping the server total.
func TestSearchFreeTextFilter(t *testing.T) {
	agg := demoAggregator(0)

	unfiltered, err := agg.Search(context.Background(), Params{
		Source: records.SourceContactCenter, From: demoFrom, To: demoTo,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	filtered, err := agg.Search(context.Background(), Params{
		Source: records.SourceContactCenter, From: demoFrom, To: demoTo, Query: "billing",
	})
	if err != nil {
		t.Fatalf("filtered search failed: %v", err)
	}

	if len(filtered.Records) == 0 || len(filtered.Records) >= len(unfiltered.Records) {
		t.Fatalf("filter had no effect: %d of %d", len(filtered.Records), len(unfiltered.Records))
	}
	if filtered.TotalRecords != len(filtered.Records) {
		t.Errorf("TotalRecords = %d, expected the post-filter count", filtered.TotalRecords)
	}
	if filtered.ServerTotal != unfiltered.ServerTotal {
		t.Errorf("ServerTotal changed under a client-side filter: %d vs %d",
			filtered.ServerTotal, unfiltered.ServerTotal)
	}
	for _, r := range filtered.Records {
		if r.QueueName != "Billing" {
			t.Errorf("non-matching record survived the filter: %+v", r)
		}
	}
}

func TestSearchDemoMeetingsFilters(t *testing.T) {
	agg := demoAggregator(0)
	v := true

	res, err := agg.Search(context.Background(), Params{
		Source:     records.SourceMeetings,
		From:       demoFrom,
		To:         demoTo,
		AutoDelete: &v,
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for _, r := range res.Records {
		if !r.AutoDelete {
			t.Errorf("auto-delete filter leaked record %q", r.ID)
		}
	}
}

func TestDemoUsersAndCounts(t *testing.T) {
	agg := demoAggregator(0)

	users, err := agg.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) == 0 {
		t.Fatal("no demo users")
	}

	counts, err := agg.UserCounts(context.Background(), demoFrom, demoTo)
	if err != nil {
		t.Fatalf("UserCounts failed: %v", err)
	}
	if len(counts.Counts) != len(users) {
		t.Errorf("counts cover %d users, roster has %d", len(counts.Counts), len(users))
	}
	var total int
	for _, c := range counts.Counts {
		total += c.Meetings
	}
	if total == 0 {
		t.Error("all demo users report zero meetings")
	}
}
