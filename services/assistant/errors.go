package assistant

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyUtterance is returned when a turn arrives with nothing to say.
var ErrEmptyUtterance = errors.New("empty utterance")

// ConversationUnavailableError signals that the language model call failed.
// The session is left unmodified when this is returned, so retrying the same
// turn is safe.
type ConversationUnavailableError struct {
	Cause error
}

func (e *ConversationUnavailableError) Error() string {
	return fmt.Sprintf("conversation unavailable: %v", e.Cause)
}

func (e *ConversationUnavailableError) Unwrap() error { return e.Cause }

// IncompletePayloadError signals that the model emitted a payload with missing
// fields. It is an internal control signal, never shown to the end user; the
// conversation simply continues.
type IncompletePayloadError struct {
	Missing []string
}

func (e *IncompletePayloadError) Error() string {
	return "booking payload missing fields: " + strings.Join(e.Missing, ", ")
}

// InvalidTimeRangeError signals that the proposed end does not come after the
// start on the same day. Surfaced to the user as a request to restate the time.
type InvalidTimeRangeError struct {
	Start string
	End   string
}

func (e *InvalidTimeRangeError) Error() string {
	return fmt.Sprintf("invalid time range: %s to %s", e.Start, e.End)
}

// MalformedPayloadError signals that a payload block was present but did not
// parse. The model is best-effort; this is expected occasionally.
type MalformedPayloadError struct {
	Raw   string
	Cause error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed booking payload: %v", e.Cause)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Cause }
