package envelope

import (
	"encoding/json"
	"testing"
)

func TestClassifyRelay(t *testing.T) {
	raw := []byte(`{
		"Records": [
			{
				"EventSource": "aws:sns",
				"Sns": {
					"Message": "hello",
					"Subject": "Test",
					"TopicArn": "arn:aws:sns:us-east-1:123456789012:TestTopic",
					"MessageId": "msg-001"
				}
			}
		]
	}`)

	shape := Classify(raw)
	relay, ok := shape.(Relay)
	if !ok {
		t.Fatalf("expected Relay, got %T", shape)
	}
	if len(relay.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(relay.Records))
	}
	rec := relay.Records[0]
	if !rec.FromSNS() {
		t.Fatal("expected record to be SNS-sourced")
	}
	if rec.SNS.Subject != "Test" || rec.SNS.Message != "hello" {
		t.Fatalf("unexpected record payload: %+v", rec.SNS)
	}
}

func TestClassifyBusEvent(t *testing.T) {
	raw := []byte(`{
		"source": "aws.ecs",
		"detail-type": "ECS Task State Change",
		"detail": {"lastStatus": "STOPPED"},
		"region": "ap-south-1",
		"account": "123456789012",
		"time": "2026-02-10T06:10:00Z",
		"id": "evt-1",
		"resources": ["arn:aws:ecs:ap-south-1:123456789012:task/my-cluster/abc"]
	}`)

	shape := Classify(raw)
	ev, ok := shape.(*BusEvent)
	if !ok {
		t.Fatalf("expected *BusEvent, got %T", shape)
	}
	if ev.Source.Or("") != "aws.ecs" {
		t.Fatalf("expected source aws.ecs, got %q", ev.Source)
	}
	if ev.DetailType.Or("") != "ECS Task State Change" {
		t.Fatalf("expected detail-type, got %q", ev.DetailType)
	}
	if ev.Detail["lastStatus"] != "STOPPED" {
		t.Fatalf("unexpected detail: %v", ev.Detail)
	}
	if len(ev.Resources) != 1 {
		t.Fatalf("expected 1 resource, got %d", len(ev.Resources))
	}
}

func TestClassifyUnknown(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no recognized keys", `{"foo": "bar"}`},
		{"source without detail-type", `{"source": "aws.ec2"}`},
		{"detail-type without source", `{"detail-type": "Something"}`},
		{"not an object", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape := Classify([]byte(tt.raw))
			if _, ok := shape.(Unknown); !ok {
				t.Fatalf("expected Unknown, got %T", shape)
			}
		})
	}
}

func TestStringOrList(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"plain string", `"aws.ecs"`, "aws.ecs"},
		{"singleton list", `["aws.ecs"]`, "aws.ecs"},
		{"first of many", `["aws.ecs", "aws.ec2"]`, "aws.ecs"},
		{"empty list", `[]`, "fallback"},
		{"wrong type", `42`, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringOrList
			if err := json.Unmarshal([]byte(tt.json), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := s.Or("fallback"); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClassifyBusEventListEncoded(t *testing.T) {
	// EventBridge rule inputs may wrap source and detail-type in lists.
	raw := []byte(`{
		"source": ["aws.health"],
		"detail-type": ["AWS Health Event"],
		"detail": {}
	}`)

	ev, ok := Classify(raw).(*BusEvent)
	if !ok {
		t.Fatal("expected *BusEvent")
	}
	if ev.Source.Or("") != "aws.health" {
		t.Fatalf("expected normalized source, got %q", ev.Source)
	}
}
