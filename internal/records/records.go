// Package records defines the normalized recording model shared by all sources
package records

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Source identifies which upstream collection a record came from
type Source string

const (
	SourcePhone         Source = "phone"
	SourceMeetings      Source = "meetings"
	SourceContactCenter Source = "cc"
)

// Valid reports whether s is one of the known sources
func (s Source) Valid() bool {
	switch s {
	case SourcePhone, SourceMeetings, SourceContactCenter:
		return true
	}
	return false
}

// Party represents a caller-like or callee-like participant on a record
type Party struct {
	Name   string `json:"name,omitempty"`
	Number string `json:"number,omitempty"`
}

// Owner is the structural owner of a record, used for grouping
type Owner struct {
	Type string `json:"type,omitempty"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// MeetingFile describes one file attached to a meeting recording
type MeetingFile struct {
	ID            string `json:"id,omitempty"`
	FileType      string `json:"file_type,omitempty"`
	FileExtension string `json:"file_extension,omitempty"`
	FileSize      int64  `json:"file_size,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
}

// UnifiedRecording is the normalized record shape shared by the phone,
// meetings and contact-center sources. Source-specific payload fields are
// populated only for their source and left zero otherwise.
type UnifiedRecording struct {
	Source    Source    `json:"source"`
	ID        string    `json:"id"`
	StartTime time.Time `json:"start_time"`
	Duration  int       `json:"duration"` // seconds
	Caller    Party     `json:"caller"`
	Callee    Party     `json:"callee"`
	Owner     Owner     `json:"owner"`
	Topic     string    `json:"topic,omitempty"`
	HostID    string    `json:"host_id,omitempty"`

	// Meetings payload
	MeetingUUID          string        `json:"meeting_uuid,omitempty"`
	OwnerEmail           string        `json:"owner_email,omitempty"`
	Files                []MeetingFile `json:"files,omitempty"`
	PrimaryFileType      string        `json:"primary_file_type,omitempty"`
	PrimaryFileExtension string        `json:"primary_file_extension,omitempty"`
	FileTypes            []string      `json:"file_types,omitempty"`
	TotalBytes           int64         `json:"total_bytes,omitempty"`
	AutoDelete           bool          `json:"auto_delete,omitempty"`

	// Contact-center payload
	QueueID   string `json:"queue_id,omitempty"`
	QueueName string `json:"queue_name,omitempty"`
	AgentName string `json:"agent_name,omitempty"`
	AgentMail string `json:"agent_email,omitempty"`

	// Index is the record's position in its fetched result set, kept as
	// the key fallback for records lacking any upstream identifier.
	Index int `json:"-"`
}

// SelectionKey returns the stable identity used for UI selection. Record ids
// are unique only within one source, so the key always carries the source
// tag plus the most specific identifier available, with the positional index
// as a last resort.
func (r *UnifiedRecording) SelectionKey() string {
	secondary := r.MeetingUUID
	if secondary == "" {
		secondary = r.QueueID
	}
	primary := r.ID
	if primary == "" {
		primary = fmt.Sprintf("idx-%d", r.Index)
	}
	return fmt.Sprintf("%s|%s|%s", r.Source, secondary, primary)
}

// Haystack builds the lower-cased search text for the uniform free-text
// filter: caller/callee names and numbers, owner name, topic and host
// identifiers, concatenated.
func (r *UnifiedRecording) Haystack() string {
	parts := []string{
		r.Caller.Name, r.Caller.Number,
		r.Callee.Name, r.Callee.Number,
		r.Owner.Name, r.Topic, r.HostID, r.OwnerEmail,
		r.AgentName, r.AgentMail, r.QueueName,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// WorkError is the structured error carried by a failed fan-out unit. It is
// auxiliary data, not a request failure: callers receive it alongside the
// records of the units that succeeded.
type WorkError struct {
	SubjectID    string `json:"subject_id"`
	SubjectLabel string `json:"subject_label,omitempty"`
	Status       int    `json:"status,omitempty"`
	Message      string `json:"message"`
	Raw          string `json:"raw,omitempty"`
}

func (e WorkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.SubjectID, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.SubjectID, e.Message)
}

// FilterQuery narrows recs to those whose haystack contains the trimmed,
// lower-cased query. An empty query matches everything.
func FilterQuery(recs []UnifiedRecording, query string) []UnifiedRecording {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return recs
	}
	out := make([]UnifiedRecording, 0, len(recs))
	for _, r := range recs {
		if strings.Contains(r.Haystack(), q) {
			out = append(out, r)
		}
	}
	return out
}

// SortByStartTime orders recs newest first, for the combined cross-source
// view where fan-out arrival order is meaningless.
func SortByStartTime(recs []UnifiedRecording) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].StartTime.After(recs[j].StartTime)
	})
}

// ContainsFold reports whether s contains substr, case-insensitively. Empty
// substr matches.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
