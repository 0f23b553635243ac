package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
)

// Accent colors shared by the formatters.
const (
	colorRed     = 0xE74C3C
	colorGreen   = 0x2ECC71
	colorAmber   = 0xF39C12
	colorGray    = 0x95A5A6
	colorBlue    = 0x3498DB
	colorBlurple = 0x7289DA
)

// AlarmMessage is the CloudWatch alarm state-change payload wrapped in an
// SNS relay message.
type AlarmMessage struct {
	AlarmName        string       `json:"AlarmName"`
	AlarmDescription string       `json:"AlarmDescription"`
	AccountID        string       `json:"AWSAccountId"`
	NewStateValue    string       `json:"NewStateValue"`
	OldStateValue    string       `json:"OldStateValue"`
	NewStateReason   string       `json:"NewStateReason"`
	StateChangeTime  string       `json:"StateChangeTime"`
	Region           string       `json:"Region"`
	Trigger          AlarmTrigger `json:"Trigger"`
}

// AlarmTrigger carries the metric the alarm watches.
type AlarmTrigger struct {
	MetricName string           `json:"MetricName"`
	Namespace  string           `json:"Namespace"`
	Dimensions []AlarmDimension `json:"Dimensions"`
}

// AlarmDimension is one metric dimension name/value pair.
type AlarmDimension struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DecodeAlarm decodes an SNS message body into an AlarmMessage. The second
// return value reports whether the message is an alarm payload at all,
// recognized by the presence of an AlarmName key.
func DecodeAlarm(raw []byte) (AlarmMessage, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return AlarmMessage{}, false
	}
	if _, ok := probe["AlarmName"]; !ok {
		return AlarmMessage{}, false
	}
	var msg AlarmMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return AlarmMessage{}, false
	}
	return msg, true
}

// alarmStateColor maps the new alarm state to an accent color and a
// leading icon. Unknown states get the neutral defaults, never an error.
func alarmStateColor(state string) (int, string) {
	switch state {
	case "ALARM":
		return colorRed, "🔴"
	case "OK":
		return colorGreen, "🟢"
	case "INSUFFICIENT_DATA":
		return colorAmber, "🟡"
	default:
		return colorGray, "⚪"
	}
}

// Alarm renders a CloudWatch alarm state change into an embed.
func Alarm(msg AlarmMessage) embed.Embed {
	name := msg.AlarmName
	if name == "" {
		name = "Unknown Alarm"
	}
	newState := msg.NewStateValue
	if newState == "" {
		newState = "UNKNOWN"
	}
	oldState := msg.OldStateValue
	if oldState == "" {
		oldState = "UNKNOWN"
	}

	color, icon := alarmStateColor(newState)

	fields := []embed.Field{
		{Name: "State Transition", Value: fmt.Sprintf("`%s` → `%s`", oldState, newState), Inline: true},
		{Name: "Region", Value: orNA(msg.Region), Inline: true},
		{Name: "Account", Value: orNA(msg.AccountID), Inline: true},
	}

	if msg.Trigger.Namespace != "" || msg.Trigger.MetricName != "" {
		fields = append(fields, embed.Field{
			Name:  "Metric",
			Value: fmt.Sprintf("`%s/%s`", msg.Trigger.Namespace, msg.Trigger.MetricName),
		})
	}

	if len(msg.Trigger.Dimensions) > 0 {
		parts := make([]string, 0, len(msg.Trigger.Dimensions))
		for _, d := range msg.Trigger.Dimensions {
			parts = append(parts, fmt.Sprintf("`%s=%s`", orUnknownMark(d.Name), orUnknownMark(d.Value)))
		}
		fields = append(fields, embed.Field{Name: "Dimensions", Value: strings.Join(parts, ", ")})
	}

	if msg.NewStateReason != "" {
		fields = append(fields, embed.Field{Name: "Reason", Value: embed.Truncate(msg.NewStateReason, 1024)})
	}

	body := msg.AlarmDescription
	if body == "" {
		body = fmt.Sprintf("The alarm **%s** is now in **%s** state.", name, newState)
	}

	return embed.Embed{
		Title:       fmt.Sprintf("%s CloudWatch Alarm: %s", icon, name),
		Description: embed.Truncate(body, embed.MaxDescLen),
		Color:       color,
		Fields:      fields,
		FooterText:  "CloudWatch Alarm Notification",
		Timestamp:   msg.StateChangeTime,
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknownMark(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
