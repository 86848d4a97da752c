// Package source implements the per-source adapters that fetch and normalize
// recording metadata from the upstream collections
package source

import (
	"errors"

	"github.com/recsweep/recsweep/internal/records"
	"github.com/recsweep/recsweep/internal/zoom"
)

// Result is the outcome of one adapter fetch. Errors holds per-unit fan-out
// failures and is auxiliary data: its presence does not make the fetch a
// failure as long as at least one unit succeeded. Incomplete signals that a
// page cap was hit while the upstream still advertised more pages.
type Result struct {
	Records      []records.UnifiedRecording `json:"records"`
	Errors       []records.WorkError        `json:"_errors,omitempty"`
	TotalRecords int                        `json:"total_records"`
	ServerTotal  int                        `json:"server_total,omitempty"`
	Incomplete   bool                       `json:"incomplete,omitempty"`
}

// workError converts a unit failure into the structured per-unit error shape,
// extracting the upstream status and raw body when available.
func workError(subjectID, subjectLabel string, err error) records.WorkError {
	we := records.WorkError{
		SubjectID:    subjectID,
		SubjectLabel: subjectLabel,
		Message:      err.Error(),
	}

	var httpErr *zoom.HTTPError
	if errors.As(err, &httpErr) {
		we.Status = httpErr.StatusCode
		we.Raw = httpErr.Body
	}
	var apiErr *zoom.ZoomAPIError
	if errors.As(err, &apiErr) {
		we.Status = apiErr.Status
		we.Message = apiErr.Message
	}
	var malformed *zoom.MalformedResponseError
	if errors.As(err, &malformed) {
		we.Raw = malformed.Raw
	}

	return we
}
