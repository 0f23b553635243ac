package parse

import (
	"strings"
	"testing"

	"github.com/initrd/lambda-discord-notifier/internal/domain/envelope"
)

func TestPlainRelay(t *testing.T) {
	rec := envelope.Record{
		EventSource: "aws:sns",
		SNS: envelope.RecordSNS{
			Message:  "This is just plain text.",
			Subject:  "Test",
			TopicARN: "arn:aws:sns:us-east-1:123456789012:TestTopic",
		},
	}
	e := PlainRelay(rec)

	if e.Description != "This is just plain text." {
		t.Fatalf("expected raw text body, got %q", e.Description)
	}
	if len(e.Fields) != 2 || e.Fields[0].Name != "Subject" || e.Fields[1].Name != "Topic ARN" {
		t.Fatalf("expected Subject and Topic ARN fields, got %+v", e.Fields)
	}
	if e.Fields[0].Value != "Test" {
		t.Fatalf("expected subject value, got %q", e.Fields[0].Value)
	}
}

func TestPlainRelayMissingMetadata(t *testing.T) {
	e := PlainRelay(envelope.Record{SNS: envelope.RecordSNS{Message: "x"}})

	if e.Fields[0].Value != "N/A" || e.Fields[1].Value != "N/A" {
		t.Fatalf("expected N/A fallbacks, got %+v", e.Fields)
	}
}

func TestStructuredRelay(t *testing.T) {
	rec := envelope.Record{SNS: envelope.RecordSNS{Subject: "Deploy"}}
	e := StructuredRelay(rec, map[string]any{"status": "done"})

	if !strings.Contains(e.Description, "\"status\": \"done\"") {
		t.Fatalf("expected pretty-printed body, got %q", e.Description)
	}
	if len(e.Fields) != 1 || e.Fields[0].Name != "Subject" {
		t.Fatalf("expected single Subject field, got %+v", e.Fields)
	}
}

func TestUnknownEnvelope(t *testing.T) {
	e := UnknownEnvelope([]byte(`{"foo": "bar"}`))

	if !strings.Contains(e.Title, "Unknown Event") {
		t.Fatalf("expected warning title, got %q", e.Title)
	}
	if e.Color != colorGray {
		t.Fatalf("expected neutral color, got %#x", e.Color)
	}
	if !strings.HasPrefix(e.Description, "```json\n") || !strings.Contains(e.Description, "\"foo\": \"bar\"") {
		t.Fatalf("expected fenced pretty-printed envelope, got %q", e.Description)
	}
}
