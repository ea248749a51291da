package assistant

import (
	"errors"
	"strings"
	"testing"
)

const confirmedBlock = "Great, booking it now!\n```json\n" +
	`{"name":"Touseef","date":"2026-02-25","start_time":"14:00","end_time":"17:00","title":"Team Sync","confirmed":true}` +
	"\n```"

func TestExtractPayload(t *testing.T) {
	t.Run("no block means still collecting", func(t *testing.T) {
		payload, err := ExtractPayload("Nice to meet you! What date works for you?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload != nil {
			t.Fatalf("expected nil payload, got %+v", payload)
		}
	})

	t.Run("complete confirmed block", func(t *testing.T) {
		payload, err := ExtractPayload(confirmedBlock)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload == nil {
			t.Fatal("expected payload")
		}
		if payload.Name != "Touseef" || payload.Date != "2026-02-25" ||
			payload.StartTime != "14:00" || payload.EndTime != "17:00" ||
			payload.Title != "Team Sync" {
			t.Errorf("unexpected payload: %+v", payload)
		}
		if !payload.Confirmed {
			t.Error("expected Confirmed to be true")
		}
	})

	t.Run("string confirmed is not confirmed", func(t *testing.T) {
		out := "```json\n" +
			`{"name":"A","date":"2026-02-25","start_time":"14:00","end_time":"17:00","title":"T","confirmed":"yes"}` +
			"\n```"
		payload, err := ExtractPayload(out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload.Confirmed {
			t.Error("a string confirmation marker must not count as confirmed")
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		out := "```json\n" +
			`{"name":"A","date":"2026-02-25","start_time":"14:00","end_time":"17:00","confirmed":true}` +
			"\n```"
		_, err := ExtractPayload(out)
		var incomplete *IncompletePayloadError
		if !errors.As(err, &incomplete) {
			t.Fatalf("expected IncompletePayloadError, got %v", err)
		}
		if len(incomplete.Missing) != 1 || incomplete.Missing[0] != "title" {
			t.Errorf("expected missing [title], got %v", incomplete.Missing)
		}
	})

	t.Run("unparseable block", func(t *testing.T) {
		_, err := ExtractPayload("```json\n{\"name\": oops}\n```")
		var malformed *MalformedPayloadError
		if !errors.As(err, &malformed) {
			t.Fatalf("expected MalformedPayloadError, got %v", err)
		}
	})

	t.Run("backwards time range", func(t *testing.T) {
		out := "```json\n" +
			`{"name":"A","date":"2026-02-25","start_time":"17:00","end_time":"14:00","title":"T","confirmed":true}` +
			"\n```"
		_, err := ExtractPayload(out)
		var badRange *InvalidTimeRangeError
		if !errors.As(err, &badRange) {
			t.Fatalf("expected InvalidTimeRangeError, got %v", err)
		}
		if badRange.Start != "17:00" || badRange.End != "14:00" {
			t.Errorf("unexpected range in error: %+v", badRange)
		}
	})

	t.Run("non-canonical times deferred to normalization", func(t *testing.T) {
		out := "```json\n" +
			`{"name":"A","date":"tomorrow","start_time":"5 PM","end_time":"2 PM","title":"T","confirmed":true}` +
			"\n```"
		payload, err := ExtractPayload(out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload == nil {
			t.Fatal("expected payload to pass through for later normalization")
		}
	})
}

func TestStripPayload(t *testing.T) {
	clean := StripPayload(confirmedBlock)
	if strings.Contains(clean, "```") {
		t.Errorf("payload block not removed: %q", clean)
	}
	if clean != "Great, booking it now!" {
		t.Errorf("unexpected clean text: %q", clean)
	}
}
