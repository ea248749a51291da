package speech

import "fmt"

// TranscriptionFailedError signals that the audio could not be turned into
// text (unreadable recording, recognition failure, or silence).
type TranscriptionFailedError struct {
	Cause error
}

func (e *TranscriptionFailedError) Error() string {
	return fmt.Sprintf("transcription failed: %v", e.Cause)
}

func (e *TranscriptionFailedError) Unwrap() error { return e.Cause }
