// Package pagination drives cursor-based pagination loops against upstream collections
package pagination

import (
	"context"
	"fmt"
)

// PageFunc fetches one page for the given continuation token. The first call
// receives an empty token. It returns the page, the next token (empty when
// the collection is exhausted), and an error that aborts the whole loop.
type PageFunc[P any] func(ctx context.Context, token string) (page P, next string, err error)

// Result carries the fetched pages and whether the loop stopped at the page
// cap while the upstream still advertised a continuation token. Callers
// should surface TerminatedEarly as "results may be incomplete", not as a
// failure.
type Result[P any] struct {
	Pages           []P
	TerminatedEarly bool
}

// FetchAll loops fetch until the upstream returns an empty token or maxPages
// pages have been retrieved. maxPages <= 0 means no cap. There is one logical
// connection here, so unlike a fan-out batch a non-2xx or malformed page
// fails the entire fetch.
func FetchAll[P any](ctx context.Context, maxPages int, fetch PageFunc[P]) (Result[P], error) {
	var res Result[P]
	token := ""
	for {
		page, next, err := fetch(ctx, token)
		if err != nil {
			return res, fmt.Errorf("page %d (token %q): %w", len(res.Pages)+1, token, err)
		}
		res.Pages = append(res.Pages, page)
		if next == "" {
			return res, nil
		}
		if maxPages > 0 && len(res.Pages) >= maxPages {
			res.TerminatedEarly = true
			return res, nil
		}
		token = next
	}
}
