package source

import (
	"context"
	"fmt"
	"time"

	"github.com/recsweep/recsweep/internal/pagination"
	"github.com/recsweep/recsweep/internal/pool"
	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/users"
	"github.com/recsweep/recsweep/internal/zoom"
)

// MeetingsAdapter fetches meeting cloud recordings with a two-level fan-out:
// enumerate all active account users, then fetch each user's recordings
// through the worker pool at a fixed concurrency chosen to respect upstream
// rate limits.
type MeetingsAdapter struct {
	client      zoom.RecordingClient
	pageSize    int
	concurrency int
	allowlist   *users.Allowlist // optional, nil allows everyone
}

// MeetingsFilters holds the optional narrowing filters for a meetings fetch.
// Substring matches are case-insensitive and ANDed: owner email, then topic,
// then free text against topic+owner+host concatenated.
type MeetingsFilters struct {
	OwnerEmail string
	Topic      string
	Text       string
	AutoDelete *bool // tri-state: nil matches all
}

// UserCount is one user's meeting count for the per-user counts debug view
type UserCount struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Meetings int    `json:"meetings"`
}

// CountsResult is the per-user counts debug view: counts for users whose
// fetch succeeded plus structured errors for those that failed. It exists to
// let an operator tell "no users found" apart from "all per-user fetches
// failed".
type CountsResult struct {
	Counts []UserCount         `json:"counts"`
	Errors []records.WorkError `json:"_errors,omitempty"`
}

// NewMeetingsAdapter creates a meetings source adapter. allowlist may be nil.
func NewMeetingsAdapter(client zoom.RecordingClient, pageSize, concurrency int, allowlist *users.Allowlist) *MeetingsAdapter {
	return &MeetingsAdapter{
		client:      client,
		pageSize:    pageSize,
		concurrency: concurrency,
		allowlist:   allowlist,
	}
}

// ListActiveUsers enumerates all active account users. User lists are
// bounded by organization size, so the loop runs to natural termination
// without a page cap.
func (a *MeetingsAdapter) ListActiveUsers(ctx context.Context) ([]zoom.User, error) {
	res, err := pagination.FetchAll(ctx, 0, func(ctx context.Context, token string) (*zoom.UsersPage, string, error) {
		page, err := a.client.ListUsers(ctx, a.pageSize, token)
		if err != nil {
			return nil, "", err
		}
		return page, page.NextPageToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("user enumeration failed: %w", err)
	}

	var all []zoom.User
	for _, page := range res.Pages {
		all = append(all, page.Users...)
	}
	return all, nil
}

// userResult is the per-unit outcome of the recordings fan-out. It always
// carries the unit's user so callers can attribute it without relying on
// arrival order.
type userResult struct {
	user zoom.User
	recs []records.UnifiedRecording
	err  *records.WorkError
}

// Fetch enumerates users, fans out one recordings fetch per user, normalizes
// the results and applies the filters. Per-user failures are isolated: they
// are collected into Result.Errors and never abort sibling units.
func (a *MeetingsAdapter) Fetch(ctx context.Context, from, to time.Time, filters MeetingsFilters) (*Result, error) {
	allUsers, err := a.ListActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	fanout := allUsers
	if a.allowlist != nil {
		fanout = fanout[:0:0]
		for _, u := range allUsers {
			if a.allowlist.Allowed(u.Email) {
				fanout = append(fanout, u)
			}
		}
	}

	results := pool.Run(ctx, fanout, a.concurrency,
		func(ctx context.Context, u zoom.User) userResult {
			return a.fetchUser(ctx, u, from, to)
		},
		func(u zoom.User, panicked any) userResult {
			we := records.WorkError{
				SubjectID:    u.ID,
				SubjectLabel: u.Email,
				Message:      pool.Recovered(panicked),
			}
			return userResult{user: u, err: &we}
		},
		nil)

	result := &Result{}
	for _, r := range results {
		if r.err != nil {
			result.Errors = append(result.Errors, *r.err)
			continue
		}
		result.Records = append(result.Records, r.recs...)
	}

	result.ServerTotal = len(result.Records)
	result.Records = applyMeetingsFilters(result.Records, filters)
	for i := range result.Records {
		result.Records[i].Index = i
	}
	result.TotalRecords = len(result.Records)

	return result, nil
}

// UserCounts fans out like Fetch but returns only per-user meeting counts
// plus any per-user errors
func (a *MeetingsAdapter) UserCounts(ctx context.Context, from, to time.Time) (*CountsResult, error) {
	allUsers, err := a.ListActiveUsers(ctx)
	if err != nil {
		return nil, err
	}

	results := pool.Run(ctx, allUsers, a.concurrency,
		func(ctx context.Context, u zoom.User) userResult {
			return a.fetchUser(ctx, u, from, to)
		},
		func(u zoom.User, panicked any) userResult {
			we := records.WorkError{
				SubjectID:    u.ID,
				SubjectLabel: u.Email,
				Message:      pool.Recovered(panicked),
			}
			return userResult{user: u, err: &we}
		},
		nil)

	counts := &CountsResult{}
	for _, r := range results {
		if r.err != nil {
			counts.Errors = append(counts.Errors, *r.err)
			continue
		}
		counts.Counts = append(counts.Counts, UserCount{
			UserID:   r.user.ID,
			Email:    r.user.Email,
			Meetings: len(r.recs),
		})
	}

	return counts, nil
}

// fetchUser retrieves and normalizes one user's meeting recordings. The
// returned error is the structured per-unit shape carrying the user's
// identity and the raw upstream response where available.
func (a *MeetingsAdapter) fetchUser(ctx context.Context, u zoom.User, from, to time.Time) userResult {
	res, err := pagination.FetchAll(ctx, 0, func(ctx context.Context, token string) (*zoom.UserRecordingsPage, string, error) {
		page, err := a.client.ListUserRecordings(ctx, u.ID, zoom.PageParams{
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
		we := workError(u.ID, u.Email, err)
		return userResult{user: u, err: &we}
	}

	var recs []records.UnifiedRecording
	for _, page := range res.Pages {
		for _, meeting := range page.Meetings {
			recs = append(recs, normalizeMeeting(meeting, u, len(recs)))
		}
	}
	return userResult{user: u, recs: recs}
}

// normalizeMeeting maps an upstream meeting into the unified shape and
// derives the per-record convenience fields from its attached files
func normalizeMeeting(m zoom.Meeting, owner zoom.User, index int) records.UnifiedRecording {
	rec := records.UnifiedRecording{
		Source:    records.SourceMeetings,
		ID:        fmt.Sprintf("%d", m.ID),
		StartTime: m.StartTime,
		Duration:  m.Duration * 60, // upstream reports minutes
		Caller: records.Party{
			Name: displayName(owner),
		},
		Owner: records.Owner{
			Type: "user",
			ID:   m.HostID,
			Name: displayName(owner),
		},
		Topic:       m.Topic,
		HostID:      m.HostID,
		MeetingUUID: m.UUID,
		OwnerEmail:  owner.Email,
		AutoDelete:  m.AutoDelete,
		Index:       index,
	}

	seen := make(map[string]bool)
	for _, f := range m.RecordingFiles {
		rec.Files = append(rec.Files, records.MeetingFile{
			ID:            f.ID,
			FileType:      f.FileType,
			FileExtension: f.FileExtension,
			FileSize:      f.FileSize,
			DownloadURL:   f.DownloadURL,
		})
		if f.FileSize > 0 {
			rec.TotalBytes += f.FileSize
		}
		if f.FileType != "" && !seen[f.FileType] {
			seen[f.FileType] = true
			rec.FileTypes = append(rec.FileTypes, f.FileType)
		}
	}
	if len(m.RecordingFiles) > 0 {
		rec.PrimaryFileType = m.RecordingFiles[0].FileType
		rec.PrimaryFileExtension = m.RecordingFiles[0].FileExtension
	}

	return rec
}

// displayName prefers the user's display name and falls back to the email
func displayName(u zoom.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// applyMeetingsFilters narrows recs through the AND chain: owner email,
// topic, then free text against the concatenated topic+owner+host haystack
func applyMeetingsFilters(recs []records.UnifiedRecording, f MeetingsFilters) []records.UnifiedRecording {
	out := recs
	if f.OwnerEmail != "" {
		filtered := out[:0:0]
		for _, r := range out {
			if records.ContainsFold(r.OwnerEmail, f.OwnerEmail) {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if f.Topic != "" {
		filtered := out[:0:0]
		for _, r := range out {
			if records.ContainsFold(r.Topic, f.Topic) {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if f.Text != "" {
		filtered := out[:0:0]
		for _, r := range out {
			haystack := r.Topic + " " + r.OwnerEmail + " " + r.HostID
			if records.ContainsFold(haystack, f.Text) {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if f.AutoDelete != nil {
		filtered := out[:0:0]
		for _, r := range out {
			if r.AutoDelete == *f.AutoDelete {
				filtered = append(filtered, r)
			}
		}
		out = filtered
	}
	if out == nil {
		out = []records.UnifiedRecording{}
	}
	return out
}
