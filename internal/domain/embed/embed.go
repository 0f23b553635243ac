// Package embed defines the Discord embed domain model and its wire form.
package embed

// Discord embed limits (https://discord.com/developers/docs/resources/message#embed-object)
const (
	MaxTitleLen      = 256
	MaxDescLen       = 4096
	MaxFieldNameLen  = 256
	MaxFieldValueLen = 1024
	MaxFields        = 25
	MaxFooterLen     = 2048
)

// zeroWidthSpace fills field values that would otherwise serialize empty,
// which the Discord API rejects.
const zeroWidthSpace = "​"

// Field is one labeled section of an embed.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Embed represents a single Discord embed before wire conversion.
// Instances are built by a formatter and never mutated afterwards.
type Embed struct {
	Title       string
	Description string
	Color       int
	Fields      []Field
	FooterText  string
	Timestamp   string // ISO-8601, passed through verbatim
}

// Wire is the Discord-API-compatible shape of an embed. Empty optional
// keys are omitted entirely rather than sent as empty values.
type Wire struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Color       int         `json:"color,omitempty"`
	Fields      []WireField `json:"fields,omitempty"`
	Footer      *WireFooter `json:"footer,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"`
}

// WireField is the serialized form of a Field.
type WireField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// WireFooter is the serialized form of the footer text.
type WireFooter struct {
	Text string `json:"text"`
}

// ToWire converts the embed to its wire form, enforcing the Discord
// length and count ceilings. Oversized values are truncated, never
// rejected, so conversion cannot fail.
func (e Embed) ToWire() Wire {
	w := Wire{
		Title:       truncate(e.Title, MaxTitleLen),
		Description: truncate(e.Description, MaxDescLen),
		Color:       e.Color,
		Timestamp:   e.Timestamp,
	}

	if len(e.Fields) > 0 {
		fields := e.Fields
		if len(fields) > MaxFields {
			fields = fields[:MaxFields]
		}
		w.Fields = make([]WireField, 0, len(fields))
		for _, f := range fields {
			w.Fields = append(w.Fields, WireField{
				Name:   orPlaceholder(truncate(f.Name, MaxFieldNameLen)),
				Value:  orPlaceholder(truncate(f.Value, MaxFieldValueLen)),
				Inline: f.Inline,
			})
		}
	}

	if e.FooterText != "" {
		w.Footer = &WireFooter{Text: truncate(e.FooterText, MaxFooterLen)}
	}

	return w
}

// truncate cuts s to at most limit runes. Counting runes instead of bytes
// keeps multi-byte characters intact at the cut point.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func orPlaceholder(s string) string {
	if s == "" {
		return zeroWidthSpace
	}
	return s
}

// Truncate exposes the rune-based truncation rule for formatters that cap
// their own free-text sections below the embed ceilings.
func Truncate(s string, limit int) string {
	return truncate(s, limit)
}
