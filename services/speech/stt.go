package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"
)

// GoogleTranscriber implements Transcriber with Google Cloud Speech-to-Text.
type GoogleTranscriber struct {
	credentialsFile string
}

func NewGoogleTranscriber(credentialsFile string) *GoogleTranscriber {
	return &GoogleTranscriber{credentialsFile: credentialsFile}
}

func (t *GoogleTranscriber) Transcribe(ctx context.Context, recording []byte, language string) (string, error) {
	if len(recording) < MinRecordingBytes {
		return "", &TranscriptionFailedError{Cause: errors.New("recording too short")}
	}
	if language == "" {
		language = "en-US"
	}

	audioData, err := normalizeRecording(recording)
	if err != nil {
		return "", &TranscriptionFailedError{Cause: err}
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(t.credentialsFile))
	if err != nil {
		return "", fmt.Errorf("failed to initialize speech client: %w", err)
	}
	defer client.Close()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   sampleRateHertz,
			LanguageCode:      language,
			AudioChannelCount: 1,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: audioData,
			},
		},
	}

	resp, err := client.Recognize(ctx, req)
	if err != nil {
		return "", &TranscriptionFailedError{Cause: err}
	}

	var transcript strings.Builder
	for _, result := range resp.Results {
		for _, alt := range result.Alternatives {
			transcript.WriteString(alt.Transcript + " ")
		}
	}

	text := strings.TrimSpace(transcript.String())
	if text == "" {
		return "", &TranscriptionFailedError{Cause: errors.New("no speech recognized")}
	}
	return text, nil
}
