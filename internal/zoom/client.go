// Package zoom provides the API client for the Zoom recording endpoints
package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// RecordingClient defines the interface for the Zoom recording API
// operations used by the source adapters and the trash orchestrator
type RecordingClient interface {
	ListPhoneRecordings(ctx context.Context, params PageParams) (*PhoneRecordingsPage, error)
	ListUsers(ctx context.Context, pageSize int, nextPageToken string) (*UsersPage, error)
	ListUserRecordings(ctx context.Context, userID string, params PageParams) (*UserRecordingsPage, error)
	ListCCRecordings(ctx context.Context, params PageParams) (*CCRecordingsPage, error)
	TrashPhoneRecording(ctx context.Context, recordingID string) error
	TrashMeetingRecording(ctx context.Context, meetingID string) error
}

// PageParams holds common parameters for paginated list requests
type PageParams struct {
	From          *time.Time // Start date for the date range
	To            *time.Time // End date for the date range
	PageSize      int        // Number of records per page (default: 30, max: 300)
	NextPageToken string     // Next page token for pagination
}

// Doer abstracts the authenticated retry client for testability
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements the RecordingClient interface
type Client struct {
	httpClient Doer
	baseURL    string
}

// NewClient creates a new Zoom API client
func NewClient(httpClient Doer, baseURL string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// query builds the common query string for paginated list requests
func (p PageParams) query() url.Values {
	q := url.Values{}
	if p.From != nil {
		q.Set("from", p.From.Format("2006-01-02"))
	}
	if p.To != nil {
		q.Set("to", p.To.Format("2006-01-02"))
	}
	pageSize := p.PageSize
	if pageSize == 0 {
		pageSize = 30
	}
	q.Set("page_size", strconv.Itoa(pageSize))
	if p.NextPageToken != "" {
		q.Set("next_page_token", p.NextPageToken)
	}
	return q
}

// getJSON issues a GET request and decodes the JSON response into out,
// preserving the raw body when it is not valid JSON
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Raw: string(body), Err: err}
	}

	return nil
}

// ListPhoneRecordings retrieves one page of phone call recordings
func (c *Client) ListPhoneRecordings(ctx context.Context, params PageParams) (*PhoneRecordingsPage, error) {
	endpoint := fmt.Sprintf("%s/phone/recordings", c.baseURL)

	var page PhoneRecordingsPage
	if err := c.getJSON(ctx, endpoint, params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUsers retrieves one page of active account users
func (c *Client) ListUsers(ctx context.Context, pageSize int, nextPageToken string) (*UsersPage, error) {
	endpoint := fmt.Sprintf("%s/users", c.baseURL)

	q := url.Values{}
	q.Set("status", "active")
	if pageSize == 0 {
		pageSize = 300
	}
	q.Set("page_size", strconv.Itoa(pageSize))
	if nextPageToken != "" {
		q.Set("next_page_token", nextPageToken)
	}

	var page UsersPage
	if err := c.getJSON(ctx, endpoint, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListUserRecordings retrieves one page of a user's meeting recordings
func (c *Client) ListUserRecordings(ctx context.Context, userID string, params PageParams) (*UserRecordingsPage, error) {
	endpoint := fmt.Sprintf("%s/users/%s/recordings", c.baseURL, url.PathEscape(userID))

	var page UserRecordingsPage
	if err := c.getJSON(ctx, endpoint, params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListCCRecordings retrieves one page of contact-center recordings
func (c *Client) ListCCRecordings(ctx context.Context, params PageParams) (*CCRecordingsPage, error) {
	endpoint := fmt.Sprintf("%s/contact_center/recordings", c.baseURL)

	var page CCRecordingsPage
	if err := c.getJSON(ctx, endpoint, params.query(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// postTrash issues a trash request with the given JSON body. Success is any
// 2xx; failure surfaces the status and raw body text.
func (c *Client) postTrash(ctx context.Context, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal trash request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create trash request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("trash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}

	return nil
}

// TrashPhoneRecording moves a phone recording to the trash
func (c *Client) TrashPhoneRecording(ctx context.Context, recordingID string) error {
	endpoint := fmt.Sprintf("%s/phone/recordings/trash", c.baseURL)
	return c.postTrash(ctx, endpoint, map[string]string{
		"recordingId": recordingID,
	})
}

// TrashMeetingRecording moves a meeting's recordings to the trash
func (c *Client) TrashMeetingRecording(ctx context.Context, meetingID string) error {
	endpoint := fmt.Sprintf("%s/meetings/recordings/trash", c.baseURL)
	return c.postTrash(ctx, endpoint, map[string]string{
		"meetingId": meetingID,
		"action":    "trash",
	})
}
