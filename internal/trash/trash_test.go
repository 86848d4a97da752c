package trash

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/recsweep/recsweep/internal/records"
)

// fakeRemover records calls and fails the ids it is told to.
type fakeRemover struct {
	phoneCalls   []string
	meetingCalls []string
	failIDs      map[string]error
}

func (f *fakeRemover) TrashPhoneRecording(ctx context.Context, recordingID string) error {
	f.phoneCalls = append(f.phoneCalls, recordingID)
	return f.failIDs[recordingID]
}

func (f *fakeRemover) TrashMeetingRecording(ctx context.Context, meetingID string) error {
	f.meetingCalls = append(f.meetingCalls, meetingID)
	return f.failIDs[meetingID]
}

func phoneRec(id string) records.UnifiedRecording {
	return records.UnifiedRecording{Source: records.SourcePhone, ID: id, Caller: records.Party{Name: "Caller " + id}}
}

func meetingRec(id, uuid string) records.UnifiedRecording {
	return records.UnifiedRecording{Source: records.SourceMeetings, ID: id, MeetingUUID: uuid, Topic: "Topic " + id}
}

func TestConfirmRun(t *testing.T) {
	remover := &fakeRemover{}
	orch := New(remover, nil)

	if orch.State() != StateIdle {
		t.Fatalf("initial state = %q", orch.State())
	}

	batch := []records.UnifiedRecording{phoneRec("p1"), meetingRec("m1", "uuid-1")}
	if err := orch.Confirm(batch); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if orch.State() != StateConfirming {
		t.Errorf("state after confirm = %q", orch.State())
	}

	summary, err := orch.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Total != 2 || summary.Successes != 2 || summary.Failures != 0 {
		t.Errorf("summary = %+v", summary)
	}
	if orch.State() != StateIdle {
		t.Errorf("state after run = %q", orch.State())
	}
	if len(remover.phoneCalls) != 1 || remover.phoneCalls[0] != "p1" {
		t.Errorf("phone calls = %v", remover.phoneCalls)
	}
	if len(remover.meetingCalls) != 1 || remover.meetingCalls[0] != "uuid-1" {
		t.Errorf("meeting calls = %v", remover.meetingCalls)
	}
}

// TestRunCountsValidationFailures runs a batch of five where the third
// record lacks its identifier: the batch completes with done=5, four
// successes and one failure.
func TestRunCountsValidationFailures(t *testing.T) {
	remover := &fakeRemover{}
	orch := New(remover, nil)

	batch := []records.UnifiedRecording{
		phoneRec("p1"),
		phoneRec("p2"),
		{Source: records.SourceMeetings, ID: "m3", Topic: "No UUID"}, // missing meeting uuid
		meetingRec("m4", "uuid-4"),
		phoneRec("p5"),
	}
	if err := orch.Confirm(batch); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	var progressed []int
	orch.SetObserver(func(p Progress, _ ItemResult) {
		progressed = append(progressed, p.Done)
	})

	summary, err := orch.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Total != 5 || summary.Successes != 4 || summary.Failures != 1 {
		t.Errorf("summary = %+v", summary)
	}
	var validationErr *ValidationError
	if !errors.As(summary.Results[2].Err, &validationErr) {
		t.Errorf("expected ValidationError for the record missing its id, got %v", summary.Results[2].Err)
	}

	// Progress advanced after every item, failures included
	if len(progressed) != 5 {
		t.Fatalf("observer fired %d times", len(progressed))
	}
	for i, done := range progressed {
		if done != i+1 {
			t.Errorf("progress after item %d = %d", i, done)
		}
	}

	// The invalid record was never sent upstream
	if len(remover.phoneCalls)+len(remover.meetingCalls) != 4 {
		t.Errorf("upstream calls = %v + %v", remover.phoneCalls, remover.meetingCalls)
	}
}

// TestRunContinuesPastUpstreamFailure verifies one failing removal never
// aborts the rest of the batch.
func TestRunContinuesPastUpstreamFailure(t *testing.T) {
	remover := &fakeRemover{failIDs: map[string]error{
		"p2": fmt.Errorf("HTTP error 409: already trashed"),
	}}
	orch := New(remover, nil)

	if err := orch.Confirm([]records.UnifiedRecording{phoneRec("p1"), phoneRec("p2"), phoneRec("p3")}); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	summary, err := orch.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Successes != 2 || summary.Failures != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if len(remover.phoneCalls) != 3 {
		t.Errorf("expected all 3 attempted, got %v", remover.phoneCalls)
	}
}

// TestConfirmSnapshotImmutable verifies mutating the caller's slice after
// confirm does not affect the captured batch.
func TestConfirmSnapshotImmutable(t *testing.T) {
	remover := &fakeRemover{}
	orch := New(remover, nil)

	batch := []records.UnifiedRecording{phoneRec("p1"), phoneRec("p2")}
	if err := orch.Confirm(batch); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	// Simulate the live selection changing underneath the open modal
	batch[0] = phoneRec("hijacked")

	summary, err := orch.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Total != 2 {
		t.Errorf("Total = %d", summary.Total)
	}
	if remover.phoneCalls[0] != "p1" {
		t.Errorf("captured batch was mutated: %v", remover.phoneCalls)
	}
}

func TestConfirmRejectsWhileBusy(t *testing.T) {
	orch := New(&fakeRemover{}, nil)
	if err := orch.Confirm([]records.UnifiedRecording{phoneRec("p1")}); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	if err := orch.Confirm([]records.UnifiedRecording{phoneRec("p2")}); err == nil {
		t.Error("second confirm accepted while a batch is pending")
	}
	if err := orch.Confirm(nil); err == nil {
		t.Error("empty confirm accepted")
	}
}

func TestCancel(t *testing.T) {
	orch := New(&fakeRemover{}, nil)
	if err := orch.Confirm([]records.UnifiedRecording{phoneRec("p1")}); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}
	orch.Cancel()
	if orch.State() != StateIdle {
		t.Errorf("state after cancel = %q", orch.State())
	}
	if _, err := orch.Run(context.Background(), nil); err == nil {
		t.Error("Run accepted a cancelled batch")
	}
}

// TestRunReconcile verifies the reconcile callback sees the finished summary
// and its error is surfaced without losing the summary.
func TestRunReconcile(t *testing.T) {
	orch := New(&fakeRemover{}, nil)
	if err := orch.Confirm([]records.UnifiedRecording{phoneRec("p1")}); err != nil {
		t.Fatalf("Confirm failed: %v", err)
	}

	var sawSuccesses int
	refetchErr := fmt.Errorf("re-fetch failed")
	summary, err := orch.Run(context.Background(), func(_ context.Context, s Summary) error {
		sawSuccesses = s.Successes
		return refetchErr
	})
	if sawSuccesses != 1 {
		t.Errorf("reconcile saw %d successes", sawSuccesses)
	}
	if !errors.Is(err, refetchErr) {
		t.Errorf("reconcile error not surfaced: %v", err)
	}
	if summary.Successes != 1 {
		t.Errorf("summary lost on reconcile failure: %+v", summary)
	}
	if orch.State() != StateIdle {
		t.Errorf("state = %q", orch.State())
	}
}

// TestRemoveLocal verifies demo-mode reconciliation drops only the records
// that were successfully trashed.
func TestRemoveLocal(t *testing.T) {
	recs := []records.UnifiedRecording{phoneRec("p1"), phoneRec("p2"), phoneRec("p3")}
	summary := Summary{
		Results: []ItemResult{
			{Key: recs[0].SelectionKey()},
			{Key: recs[2].SelectionKey(), Err: fmt.Errorf("failed")},
		},
		Successes: 1,
	}

	remaining := RemoveLocal(recs, summary)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining, got %d", len(remaining))
	}
	if remaining[0].ID != "p2" || remaining[1].ID != "p3" {
		t.Errorf("remaining = %+v", remaining)
	}
	for i, r := range remaining {
		if r.Index != i {
			t.Errorf("record %d carries index %d", i, r.Index)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Key: "cc||c1", Reason: `source "cc" has no removal endpoint`}
	if msg := err.Error(); msg != `cannot trash cc||c1: source "cc" has no removal endpoint` {
		t.Errorf("Error() = %q", msg)
	}
}
