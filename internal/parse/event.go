package parse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
	"github.com/initrd/lambda-discord-notifier/internal/domain/envelope"
)

// jsonBodyLimit caps the pretty-printed detail rendering before the
// truncation marker is appended inside the fence.
const jsonBodyLimit = 3900

// sourceColors maps well-known event sources to accent colors. Unmapped
// sources fall back to blurple.
var sourceColors = map[string]int{
	"aws.ec2":          0xF4A460,
	"aws.ecs":          0xFF6347,
	"aws.rds":          0x4169E1,
	"aws.s3":           0x3CB371,
	"aws.guardduty":    0xDC143C,
	"aws.health":       0xFF8C00,
	"aws.codepipeline": 0x1E90FF,
	"aws.codebuild":    0x6A5ACD,
	"aws.lambda":       0xFFA500,
}

// Bus renders an EventBridge envelope into an embed. The body comes from
// a registered detail formatter when one exists for the detail-type; a
// formatter failure falls back to the generic JSON rendering and is
// logged, never surfaced.
func Bus(ev *envelope.BusEvent) embed.Embed {
	source := ev.Source.Or("unknown")
	detailType := ev.DetailType.Or("Unknown Event")

	color, ok := sourceColors[source]
	if !ok {
		color = colorBlurple
	}

	var body string
	if fn, found := Lookup(detailType); found {
		rendered, err := fn(ev.Detail)
		if err != nil {
			slog.Warn("detail formatter failed, using JSON fallback",
				"detail_type", detailType, "error", err)
			body = JSONBody(ev.Detail)
		} else {
			body = rendered
		}
	} else {
		body = JSONBody(ev.Detail)
	}

	fields := []embed.Field{
		{Name: "Source", Value: "`" + source + "`", Inline: true},
		{Name: "Detail Type", Value: detailType, Inline: true},
		{Name: "Region", Value: orNA(ev.Region), Inline: true},
		{Name: "Account", Value: orNA(ev.Account), Inline: true},
	}

	if len(ev.Resources) > 0 {
		resources := ev.Resources
		if len(resources) > 10 {
			resources = resources[:10]
		}
		lines := make([]string, 0, len(resources))
		for _, r := range resources {
			lines = append(lines, "• `"+r+"`")
		}
		fields = append(fields, embed.Field{
			Name:  "Resources",
			Value: embed.Truncate(strings.Join(lines, "\n"), 1024),
		})
	}

	if ev.ID != "" {
		fields = append(fields, embed.Field{Name: "Event ID", Value: "`" + ev.ID + "`"})
	}

	return embed.Embed{
		Title:       "📡 EventBridge: " + detailType,
		Description: body,
		Color:       color,
		Fields:      fields,
		FooterText:  "EventBridge · " + source,
		Timestamp:   ev.Time,
	}
}

// JSONBody is the generic fallback body: the detail mapping rendered as
// indented JSON inside a fenced code block, hard-capped at jsonBodyLimit
// with an in-fence truncation marker.
func JSONBody(detail map[string]any) string {
	rendered, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		rendered = []byte(fmt.Sprintf("%v", detail))
	}
	text := string(rendered)
	if len([]rune(text)) > jsonBodyLimit {
		text = embed.Truncate(text, jsonBodyLimit) + "\n… (truncated)"
	}
	return "```json\n" + text + "\n```"
}
