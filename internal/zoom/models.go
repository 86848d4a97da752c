// Package zoom defines data structures for the Zoom recording APIs
package zoom

import (
	"time"
)

// PhoneRecording represents a single Zoom Phone call recording
type PhoneRecording struct {
	ID           string    `json:"id"`
	CallID       string    `json:"call_id,omitempty"`
	CallerName   string    `json:"caller_name,omitempty"`
	CallerNumber string    `json:"caller_number,omitempty"`
	CalleeName   string    `json:"callee_name,omitempty"`
	CalleeNumber string    `json:"callee_number,omitempty"`
	Direction    string    `json:"direction,omitempty"`
	DateTime     time.Time `json:"date_time"`
	Duration     int       `json:"duration"`
	Owner        struct {
		Type string `json:"type,omitempty"`
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"owner"`
	Site struct {
		ID   string `json:"id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"site"`
	DownloadURL string `json:"download_url,omitempty"`
}

// PhoneRecordingsPage represents one page of the phone recordings endpoint
type PhoneRecordingsPage struct {
	NextPageToken string           `json:"next_page_token,omitempty"`
	PageSize      int              `json:"page_size"`
	TotalRecords  int              `json:"total_records"`
	Recordings    []PhoneRecording `json:"recordings"`
}

// User represents a Zoom account user
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Type        int    `json:"type,omitempty"`
	Status      string `json:"status,omitempty"`
}

// UsersPage represents one page of the users endpoint
type UsersPage struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	PageSize      int    `json:"page_size"`
	TotalRecords  int    `json:"total_records"`
	Users         []User `json:"users"`
}

// RecordingFile represents a single recording file within a meeting recording
type RecordingFile struct {
	ID             string    `json:"id"`
	MeetingID      string    `json:"meeting_id"`
	RecordingStart time.Time `json:"recording_start"`
	RecordingEnd   time.Time `json:"recording_end"`
	FileType       string    `json:"file_type"`
	FileExtension  string    `json:"file_extension,omitempty"`
	FileSize       int64     `json:"file_size"`
	DownloadURL    string    `json:"download_url"`
	PlayURL        string    `json:"play_url,omitempty"`
	Status         string    `json:"status"`
	RecordingType  string    `json:"recording_type,omitempty"`
}

// Meeting represents a meeting or webinar recording with all associated files
type Meeting struct {
	UUID           string          `json:"uuid"`
	ID             int64           `json:"id"`
	AccountID      string          `json:"account_id"`
	HostID         string          `json:"host_id"`
	Topic          string          `json:"topic"`
	Type           int             `json:"type"`
	StartTime      time.Time       `json:"start_time"`
	Duration       int             `json:"duration"`
	TotalSize      int64           `json:"total_size"`
	RecordingCount int             `json:"recording_count"`
	AutoDelete     bool            `json:"auto_delete,omitempty"`
	AutoDeleteDate string          `json:"auto_delete_date,omitempty"`
	RecordingFiles []RecordingFile `json:"recording_files"`
}

// UserRecordingsPage represents one page of a user's meeting recordings
type UserRecordingsPage struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	PageCount     int       `json:"page_count"`
	PageSize      int       `json:"page_size"`
	TotalRecords  int       `json:"total_records"`
	NextPageToken string    `json:"next_page_token,omitempty"`
	Meetings      []Meeting `json:"meetings"`
}

// CCConsumer represents one consumer party on a contact-center recording
type CCConsumer struct {
	ConsumerName   string `json:"consumer_name,omitempty"`
	ConsumerNumber string `json:"consumer_number,omitempty"`
	ConsumerID     string `json:"consumer_id,omitempty"`
}

// CCRecording represents a single contact-center engagement recording
type CCRecording struct {
	RecordingID     string       `json:"recording_id"`
	EngagementID    string       `json:"engagement_id,omitempty"`
	Direction       string       `json:"direction,omitempty"`
	StartTime       time.Time    `json:"recording_start_time"`
	Duration        int          `json:"duration"`
	ChannelType     string       `json:"channel_type,omitempty"`
	Consumers       []CCConsumer `json:"consumers,omitempty"`
	UserDisplayName string       `json:"user_display_name,omitempty"`
	UserEmail       string       `json:"user_email,omitempty"`
	QueueID         string       `json:"queue_id,omitempty"`
	QueueName       string       `json:"queue_name,omitempty"`
	DownloadURL     string       `json:"download_url,omitempty"`
}

// CCRecordingsPage represents one page of the contact-center recordings endpoint
type CCRecordingsPage struct {
	NextPageToken string        `json:"next_page_token,omitempty"`
	PageSize      int           `json:"page_size"`
	TotalRecords  int           `json:"total_records"`
	Recordings    []CCRecording `json:"recordings"`
}
