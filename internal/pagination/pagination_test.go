package pagination

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// fakePages builds a PageFunc serving n pages of one int each.
func fakePages(n int) PageFunc[int] {
	return func(_ context.Context, token string) (int, string, error) {
		page := 0
		if token != "" {
			fmt.Sscanf(token, "t%d", &page)
		}
		next := ""
		if page+1 < n {
			next = fmt.Sprintf("t%d", page+1)
		}
		return page, next, nil
	}
}

func TestFetchAll(t *testing.T) {
	tests := []struct {
		name         string
		totalPages   int
		maxPages     int
		expectPages  int
		expectCapped bool
	}{
		{name: "single page", totalPages: 1, maxPages: 10, expectPages: 1},
		{name: "runs to exhaustion under cap", totalPages: 3, maxPages: 10, expectPages: 3},
		{name: "stops at cap with token remaining", totalPages: 10, maxPages: 3, expectPages: 3, expectCapped: true},
		{name: "cap equals total is not early", totalPages: 3, maxPages: 3, expectPages: 3},
		{name: "zero cap means unbounded", totalPages: 25, maxPages: 0, expectPages: 25},
		{name: "negative cap means unbounded", totalPages: 25, maxPages: -1, expectPages: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := FetchAll(context.Background(), tt.maxPages, fakePages(tt.totalPages))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(res.Pages) != tt.expectPages {
				t.Errorf("expected %d pages, got %d", tt.expectPages, len(res.Pages))
			}
			if res.TerminatedEarly != tt.expectCapped {
				t.Errorf("TerminatedEarly = %v, expected %v", res.TerminatedEarly, tt.expectCapped)
			}
			for i, p := range res.Pages {
				if p != i {
					t.Errorf("page %d carries value %d", i, p)
				}
			}
		})
	}
}

// A page cap stop is not an error while a failed page is: capped results are
// usable, failed fetches are not.
func TestFetchAllCapDistinctFromError(t *testing.T) {
	res, err := FetchAll(context.Background(), 2, fakePages(5))
	if err != nil {
		t.Fatalf("capped fetch returned error: %v", err)
	}
	if !res.TerminatedEarly {
		t.Error("capped fetch did not report TerminatedEarly")
	}

	boom := errors.New("upstream exploded")
	_, err = FetchAll(context.Background(), 0, func(_ context.Context, token string) (int, string, error) {
		if token == "t1" {
			return 0, "", boom
		}
		return 0, "t1", nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
	if !strings.Contains(err.Error(), "page 2") {
		t.Errorf("error lacks page context: %v", err)
	}
}
