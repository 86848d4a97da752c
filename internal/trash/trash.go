// Package trash runs bulk trash batches over selected records. Deletions are
// higher-stakes than reads, so a batch runs strictly sequentially: slower
// than the fetch fan-out, but progress and failures stay simple to report
// and one slow item never hides behind others.
package trash

import (
	"context"
	"fmt"
	"sync"

	"github.com/recsweep/recsweep/internal/logging"
	"github.com/recsweep/recsweep/internal/records"
)

// State is the orchestrator's lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateConfirming  State = "confirming"
	StateRunning     State = "running"
	StateReconciling State = "reconciling"
)

// Remover is the provider surface the orchestrator needs. Phone and meeting
// recordings use different removal endpoints and identifiers.
type Remover interface {
	TrashPhoneRecording(ctx context.Context, recordingID string) error
	TrashMeetingRecording(ctx context.Context, meetingID string) error
}

// ValidationError marks a record that cannot be trashed because it lacks the
// identifier its source's removal endpoint requires, or because its source
// has no removal endpoint at all. It is counted as a failure, never skipped
// silently.
type ValidationError struct {
	Key    string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("cannot trash %s: %s", e.Key, e.Reason)
}

// Progress is the running batch's counter, updated after every item whether
// it succeeded or failed, so the bar reflects attempted operations.
type Progress struct {
	Total int
	Done  int
}

// ItemResult records the outcome for one record in a batch.
type ItemResult struct {
	Key   string
	Label string
	Err   error
}

// Summary is the final accounting for one batch.
type Summary struct {
	Total     int
	Successes int
	Failures  int
	Results   []ItemResult
}

// Orchestrator runs one bulk trash batch at a time through the state
// machine Idle -> Confirming -> Running -> Reconciling -> Idle.
type Orchestrator struct {
	remover Remover
	logger  logging.Logger

	mu       sync.Mutex
	state    State
	pending  []records.UnifiedRecording
	progress Progress
	observer func(Progress, ItemResult)
}

// New creates an orchestrator in the idle state.
func New(remover Remover, logger logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.GetDefaultLogger()
	}
	return &Orchestrator{
		remover: remover,
		logger:  logger,
		state:   StateIdle,
	}
}

// State returns the current lifecycle phase.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SetObserver installs a callback invoked after every item with the updated
// counters, used to drive a progress bar. Must be set before Run.
func (o *Orchestrator) SetObserver(fn func(Progress, ItemResult)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observer = fn
}

// Progress returns a copy of the running batch's counters.
func (o *Orchestrator) Progress() Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.progress
}

// Pending returns the captured pending list, for the confirmation view.
func (o *Orchestrator) Pending() []records.UnifiedRecording {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]records.UnifiedRecording, len(o.pending))
	copy(out, o.pending)
	return out
}

// Confirm captures an immutable snapshot of the records pending deletion and
// moves to the confirming state. The live selection may keep changing after
// this point without affecting the captured batch.
func (o *Orchestrator) Confirm(pending []records.UnifiedRecording) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return fmt.Errorf("trash batch already in progress (state %s)", o.state)
	}
	if len(pending) == 0 {
		return fmt.Errorf("nothing selected")
	}
	o.pending = make([]records.UnifiedRecording, len(pending))
	copy(o.pending, pending)
	o.state = StateConfirming
	o.progress = Progress{Total: len(pending)}
	return nil
}

// Cancel abandons a confirmed-but-not-started batch.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateConfirming {
		o.state = StateIdle
		o.pending = nil
		o.progress = Progress{}
	}
}

// Run executes the confirmed batch sequentially. One item's failure never
// aborts the batch: the failure is recorded and the loop continues. After
// the batch, reconcile is invoked (re-aggregation against the provider, or
// local removal in demo mode) before the orchestrator returns to idle.
// Callers clear the selection unconditionally after Run returns.
func (o *Orchestrator) Run(ctx context.Context, reconcile func(ctx context.Context, summary Summary) error) (Summary, error) {
	o.mu.Lock()
	if o.state != StateConfirming {
		o.mu.Unlock()
		return Summary{}, fmt.Errorf("no confirmed batch (state %s)", o.state)
	}
	batch := o.pending
	o.state = StateRunning
	o.mu.Unlock()

	summary := Summary{Total: len(batch)}
	for _, rec := range batch {
		err := o.removeOne(ctx, rec)
		res := ItemResult{Key: rec.SelectionKey(), Label: itemLabel(rec), Err: err}
		if err != nil {
			summary.Failures++
			if o.logger != nil {
				o.logger.WarnWithContext(ctx, "trash failed for %s: %v", res.Label, err)
			}
		} else {
			summary.Successes++
		}
		summary.Results = append(summary.Results, res)

		o.mu.Lock()
		o.progress.Done++
		p := o.progress
		fn := o.observer
		o.mu.Unlock()
		if fn != nil {
			fn(p, res)
		}
	}

	o.mu.Lock()
	o.state = StateReconciling
	o.mu.Unlock()

	var reconcileErr error
	if reconcile != nil {
		reconcileErr = reconcile(ctx, summary)
	}

	o.mu.Lock()
	o.state = StateIdle
	o.pending = nil
	o.mu.Unlock()

	if o.logger != nil {
		o.logger.InfoWithContext(ctx, "trash batch complete: %d succeeded, %d failed of %d",
			summary.Successes, summary.Failures, summary.Total)
	}
	return summary, reconcileErr
}

// removeOne dispatches a record to its source's removal endpoint. Records
// whose source has no removal path, or which lack the required identifier,
// fail validation.
func (o *Orchestrator) removeOne(ctx context.Context, rec records.UnifiedRecording) error {
	switch rec.Source {
	case records.SourcePhone:
		if rec.ID == "" {
			return &ValidationError{Key: rec.SelectionKey(), Reason: "phone recording has no recording id"}
		}
		return o.remover.TrashPhoneRecording(ctx, rec.ID)
	case records.SourceMeetings:
		if rec.MeetingUUID == "" {
			return &ValidationError{Key: rec.SelectionKey(), Reason: "meeting recording has no meeting uuid"}
		}
		return o.remover.TrashMeetingRecording(ctx, rec.MeetingUUID)
	default:
		return &ValidationError{Key: rec.SelectionKey(), Reason: fmt.Sprintf("source %q has no removal endpoint", rec.Source)}
	}
}

func itemLabel(rec records.UnifiedRecording) string {
	if rec.Topic != "" {
		return rec.Topic
	}
	if rec.Caller.Name != "" {
		return rec.Caller.Name
	}
	return rec.SelectionKey()
}

// RemoveLocal filters deleted records out of a local record list, used by
// demo mode where there is no backing store to re-fetch from. Only
// successfully trashed keys are removed.
func RemoveLocal(recs []records.UnifiedRecording, summary Summary) []records.UnifiedRecording {
	removed := make(map[string]struct{}, summary.Successes)
	for _, r := range summary.Results {
		if r.Err == nil {
			removed[r.Key] = struct{}{}
		}
	}
	out := recs[:0]
	for _, r := range recs {
		if _, ok := removed[r.SelectionKey()]; ok {
			continue
		}
		out = append(out, r)
	}
	for i := range out {
		out[i].Index = i
	}
	return out
}
