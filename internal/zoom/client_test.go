package zoom

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// plainDoer bypasses retry and auth so client tests exercise only the
// endpoint and decoding behavior.
type plainDoer struct {
	client *http.Client
}

func (d plainDoer) Do(req *http.Request) (*http.Response, error) {
	return d.client.Do(req)
}

func newTestClient(server *httptest.Server) *Client {
	return NewClient(plainDoer{client: server.Client()}, server.URL)
}

func TestListPhoneRecordings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/phone/recordings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("from") != "2026-08-01" || q.Get("to") != "2026-08-28" {
			t.Errorf("date range = %q..%q", q.Get("from"), q.Get("to"))
		}
		if q.Get("page_size") != "100" {
			t.Errorf("page_size = %q", q.Get("page_size"))
		}
		if q.Get("next_page_token") != "tok-2" {
			t.Errorf("next_page_token = %q", q.Get("next_page_token"))
		}
		w.Write([]byte(`{
			"next_page_token": "tok-3",
			"total_records": 250,
			"recordings": [
				{"id": "rec-1", "caller_name": "Ann", "caller_number": "+15550001",
				 "callee_name": "Bob", "callee_number": "+15550002",
				 "date_time": "2026-08-10T09:00:00Z", "duration": 120}
			]
		}`))
	}))
	defer server.Close()

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	page, err := newTestClient(server).ListPhoneRecordings(context.Background(), PageParams{
		From: &from, To: &to, PageSize: 100, NextPageToken: "tok-2",
	})
	if err != nil {
		t.Fatalf("ListPhoneRecordings failed: %v", err)
	}
	if page.NextPageToken != "tok-3" {
		t.Errorf("NextPageToken = %q", page.NextPageToken)
	}
	if page.TotalRecords != 250 {
		t.Errorf("TotalRecords = %d", page.TotalRecords)
	}
	if len(page.Recordings) != 1 || page.Recordings[0].ID != "rec-1" {
		t.Fatalf("unexpected recordings: %+v", page.Recordings)
	}
}

func TestListUsers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			t.Errorf("path = %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("status") != "active" {
			t.Errorf("status = %q", q.Get("status"))
		}
		if q.Get("page_size") != "300" {
			t.Errorf("page_size default = %q", q.Get("page_size"))
		}
		w.Write([]byte(`{"users":[{"id":"u1","email":"a@example.com"}],"total_records":1}`))
	}))
	defer server.Close()

	page, err := newTestClient(server).ListUsers(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(page.Users) != 1 || page.Users[0].Email != "a@example.com" {
		t.Fatalf("unexpected users: %+v", page.Users)
	}
}

func TestListUserRecordingsEscapesUserID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"meetings":[]}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).ListUserRecordings(context.Background(), "user/with?chars", PageParams{})
	if err != nil {
		t.Fatalf("ListUserRecordings failed: %v", err)
	}
	if gotPath != "/users/user%2Fwith%3Fchars/recordings" {
		t.Errorf("path = %q", gotPath)
	}
}

func TestListCCRecordings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contact_center/recordings" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"recordings": [
				{"recording_id": "cc-1", "recording_start_time": "2026-08-10T09:00:00Z",
				 "duration": 300, "queue_id": "q-1", "queue_name": "Support",
				 "user_display_name": "Agent A",
				 "consumers": [{"consumer_name": "Caller", "consumer_number": "+15550009"}]}
			]
		}`))
	}))
	defer server.Close()

	page, err := newTestClient(server).ListCCRecordings(context.Background(), PageParams{})
	if err != nil {
		t.Fatalf("ListCCRecordings failed: %v", err)
	}
	if len(page.Recordings) != 1 {
		t.Fatalf("expected 1 recording, got %d", len(page.Recordings))
	}
	rec := page.Recordings[0]
	if rec.RecordingID != "cc-1" || rec.QueueName != "Support" {
		t.Errorf("unexpected recording: %+v", rec)
	}
	if len(rec.Consumers) != 1 || rec.Consumers[0].ConsumerNumber != "+15550009" {
		t.Errorf("unexpected consumers: %+v", rec.Consumers)
	}
}

// TestMalformedResponse verifies non-JSON bodies surface as
// MalformedResponseError with the raw text preserved.
func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server).ListPhoneRecordings(context.Background(), PageParams{})
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}
	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected *MalformedResponseError, got %T", err)
	}
	if malformed.Raw != "<html>gateway error</html>" {
		t.Errorf("Raw = %q", malformed.Raw)
	}
}

func TestTrashPhoneRecording(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/phone/recordings/trash" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := newTestClient(server).TrashPhoneRecording(context.Background(), "rec-5"); err != nil {
		t.Fatalf("TrashPhoneRecording failed: %v", err)
	}
	if gotBody["recordingId"] != "rec-5" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestTrashMeetingRecording(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/meetings/recordings/trash" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	if err := newTestClient(server).TrashMeetingRecording(context.Background(), "uuid-3=="); err != nil {
		t.Fatalf("TrashMeetingRecording failed: %v", err)
	}
	if gotBody["meetingId"] != "uuid-3==" || gotBody["action"] != "trash" {
		t.Errorf("body = %v", gotBody)
	}
}

// TestTrashFailureCarriesBody verifies a non-2xx trash response surfaces the
// status and raw body text for the per-item failure report.
func TestTrashFailureCarriesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("recording already trashed"))
	}))
	defer server.Close()

	err := newTestClient(server).TrashPhoneRecording(context.Background(), "rec-5")
	if err == nil {
		t.Fatal("expected error for 409")
	}
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if httpErr.StatusCode != 409 {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
	if httpErr.Body != "recording already trashed" {
		t.Errorf("Body = %q", httpErr.Body)
	}
}
