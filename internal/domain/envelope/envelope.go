// Package envelope classifies raw inbound payloads into one of the
// recognized envelope shapes: an SNS relay batch, an EventBridge event,
// or an unrecognized fallback.
package envelope

import "encoding/json"

// Shape is the closed set of envelope variants produced by Classify.
// Consumers switch over the concrete types Relay, BusEvent and Unknown.
type Shape interface {
	shape()
}

// Relay is an SNS delivery envelope carrying one or more records.
type Relay struct {
	Records []Record `json:"Records"`
}

// Record is a single entry of a relay envelope. Only records whose
// EventSource marks them as SNS deliveries carry a usable message.
type Record struct {
	EventSource string    `json:"EventSource"`
	SNS         RecordSNS `json:"Sns"`
}

// RecordSNS is the SNS payload nested in a relay record. Message is
// either JSON-encoded text or plain text.
type RecordSNS struct {
	Message   string `json:"Message"`
	Subject   string `json:"Subject"`
	TopicARN  string `json:"TopicArn"`
	MessageID string `json:"MessageId"`
	Timestamp string `json:"Timestamp"`
}

// FromSNS reports whether the record was delivered by SNS.
func (r Record) FromSNS() bool {
	return r.EventSource == "aws:sns"
}

// BusEvent is an EventBridge envelope.
type BusEvent struct {
	Source     StringOrList   `json:"source"`
	DetailType StringOrList   `json:"detail-type"`
	Detail     map[string]any `json:"detail"`
	Region     string         `json:"region"`
	Account    string         `json:"account"`
	Time       string         `json:"time"`
	ID         string         `json:"id"`
	Resources  []string       `json:"resources"`
}

// Unknown holds a payload matching neither recognized shape. Raw is the
// original JSON, kept for the fallback pretty-print.
type Unknown struct {
	Raw json.RawMessage
}

func (Relay) shape()     {}
func (*BusEvent) shape() {}
func (Unknown) shape()   {}

// Classify inspects the shape of a raw JSON payload and returns the
// matching variant. Dispatch priority: relay records, then
// source+detail-type, then the unrecognized fallback. It never fails;
// payloads that cannot be decoded into a recognized shape come back as
// Unknown.
func Classify(raw []byte) Shape {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Unknown{Raw: raw}
	}

	if _, ok := probe["Records"]; ok {
		var relay Relay
		if err := json.Unmarshal(raw, &relay); err != nil {
			return Unknown{Raw: raw}
		}
		return relay
	}

	_, hasSource := probe["source"]
	_, hasDetailType := probe["detail-type"]
	if hasSource && hasDetailType {
		var ev BusEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			return Unknown{Raw: raw}
		}
		return &ev
	}

	return Unknown{Raw: raw}
}

// StringOrList decodes a JSON value that is either a string or a list of
// strings; a list is normalized to its first element. EventBridge rule
// inputs occasionally encode source and detail-type as singleton lists.
type StringOrList string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringOrList(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		// Neither shape: leave the value empty so callers apply their default.
		*s = ""
		return nil
	}
	if len(list) == 0 {
		*s = ""
		return nil
	}
	*s = StringOrList(list[0])
	return nil
}

// Or returns the normalized value, or def when the field was absent or empty.
func (s StringOrList) Or(def string) string {
	if s == "" {
		return def
	}
	return string(s)
}
