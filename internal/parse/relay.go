package parse

import (
	"encoding/json"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
	"github.com/initrd/lambda-discord-notifier/internal/domain/envelope"
)

// fallbackBodyLimit caps the pretty-printed envelope in the unrecognized
// fallback embed.
const fallbackBodyLimit = 4000

// PlainRelay renders a relay record whose message is not JSON: the raw
// text becomes the body, with subject and topic carried as fields.
func PlainRelay(rec envelope.Record) embed.Embed {
	return embed.Embed{
		Title:       "📢 SNS Notification",
		Description: embed.Truncate(rec.SNS.Message, embed.MaxDescLen),
		Color:       colorBlue,
		Fields: []embed.Field{
			{Name: "Subject", Value: orNA(rec.SNS.Subject)},
			{Name: "Topic ARN", Value: orNA(rec.SNS.TopicARN)},
		},
	}
}

// StructuredRelay renders a relay record carrying a generic structured
// message that is not an alarm payload.
func StructuredRelay(rec envelope.Record, parsed map[string]any) embed.Embed {
	rendered, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		rendered = []byte(rec.SNS.Message)
	}
	return embed.Embed{
		Title:       "📢 SNS Notification",
		Description: embed.Truncate(string(rendered), embed.MaxDescLen),
		Color:       colorBlue,
		Fields: []embed.Field{
			{Name: "Subject", Value: orNA(rec.SNS.Subject)},
		},
	}
}

// UnknownEnvelope renders the fallback embed for a payload matching no
// recognized shape: a warning title over the fenced, pretty-printed
// envelope.
func UnknownEnvelope(raw json.RawMessage) embed.Embed {
	var parsed any
	body := string(raw)
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if rendered, err := json.MarshalIndent(parsed, "", "  "); err == nil {
			body = string(rendered)
		}
	}

	return embed.Embed{
		Title:       "⚠️ Unknown Event",
		Description: "```json\n" + embed.Truncate(body, fallbackBodyLimit) + "\n```",
		Color:       colorGray,
	}
}
