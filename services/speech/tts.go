package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"calendrix/services/assistant"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

const maxSpeechRunes = 500

var boldRe = regexp.MustCompile(`\*\*(.*?)\*\*`)

// GoogleSynthesizer implements Synthesizer with Google Cloud Text-to-Speech.
type GoogleSynthesizer struct {
	service *texttospeech.Service
}

func NewGoogleSynthesizer(ctx context.Context, credentialsFile string) (*GoogleSynthesizer, error) {
	service, err := texttospeech.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech service: %w", err)
	}
	return &GoogleSynthesizer{service: service}, nil
}

func (s *GoogleSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.service.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{Text: SpeakableText(text)},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         "en-US-Neural2-F",
		},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: "MP3"},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return base64.StdEncoding.DecodeString(resp.AudioContent)
}

// SpeakableText strips the booking JSON block and markdown emphasis so
// replies read naturally when spoken, and caps the length.
func SpeakableText(text string) string {
	clean := assistant.StripPayload(text)
	clean = strings.TrimSpace(boldRe.ReplaceAllString(clean, "$1"))
	if clean == "" {
		clean = "Got it!"
	}
	if runes := []rune(clean); len(runes) > maxSpeechRunes {
		clean = string(runes[:maxSpeechRunes])
	}
	return clean
}
