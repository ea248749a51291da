package scheduler

import (
	"errors"
	"fmt"
)

var (
	// ErrPayloadNotConfirmed rejects commits that lack the explicit
	// confirmation marker. No side effect may happen before the user says yes.
	ErrPayloadNotConfirmed = errors.New("booking payload lacks explicit confirmation")

	// ErrPayloadIncomplete rejects commits with empty required fields.
	ErrPayloadIncomplete = errors.New("booking payload is missing required fields")
)

// CalendarCommitFailedError wraps a calendar provider failure (auth, quota,
// network, calendar not shared with the service account). No record is
// persisted when this is returned, so the same payload can be retried.
type CalendarCommitFailedError struct {
	Cause error
}

func (e *CalendarCommitFailedError) Error() string {
	return fmt.Sprintf("calendar commit failed: %v", e.Cause)
}

func (e *CalendarCommitFailedError) Unwrap() error { return e.Cause }
