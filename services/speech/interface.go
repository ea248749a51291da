package speech

import "context"

// Transcriber converts a recorded audio blob into a plain transcript string.
// The transcript feeds the dialogue engine exactly like typed input.
type Transcriber interface {
	Transcribe(ctx context.Context, recording []byte, language string) (string, error)
}

// Synthesizer converts reply text into an audio byte stream. Pure
// pass-through; no conversation state is involved.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}
