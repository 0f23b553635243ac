// Package service contains the dispatch pipeline: classify an inbound
// envelope, render embeds, deliver them, and aggregate the outcome.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
	"github.com/initrd/lambda-discord-notifier/internal/domain/envelope"
	"github.com/initrd/lambda-discord-notifier/internal/logger"
	"github.com/initrd/lambda-discord-notifier/internal/parse"
	"github.com/initrd/lambda-discord-notifier/internal/port/transport"
)

// Result is the invocation outcome: a status code plus a human-readable
// message, mirroring the upstream response contract.
type Result struct {
	Status  int    `json:"statusCode"`
	Message string `json:"body"`
}

// Deduper suppresses envelopes already processed within a TTL window.
type Deduper interface {
	Seen(key string) bool
}

// Dispatcher runs the full pipeline for one inbound envelope. A nil
// transport means delivery is unconfigured, which fails every invocation
// up front. The dedup cache is optional.
type Dispatcher struct {
	transport transport.Transport
	dedup     Deduper
}

// NewDispatcher creates a Dispatcher. dedup may be nil to disable
// duplicate suppression.
func NewDispatcher(t transport.Transport, dedup Deduper) *Dispatcher {
	return &Dispatcher{transport: t, dedup: dedup}
}

// Handle classifies one raw envelope, renders embeds, and delivers them
// sequentially. Delivery failures never abort the batch; they surface
// only in the aggregate outcome.
func (d *Dispatcher) Handle(ctx context.Context, raw []byte) Result {
	log := slog.With(
		"invocation_id", uuid.NewString(),
		"request_id", logger.RequestID(ctx),
	)

	if d.transport == nil {
		log.Error("discord webhook URL is not configured")
		return Result{Status: http.StatusInternalServerError, Message: "Missing Discord webhook configuration."}
	}

	shape := envelope.Classify(raw)

	if ev, ok := shape.(*envelope.BusEvent); ok && d.dedup != nil && ev.ID != "" {
		if d.dedup.Seen(ev.ID) {
			log.Info("duplicate event suppressed", "event_id", ev.ID)
			return Result{Status: http.StatusOK, Message: "Duplicate event ignored."}
		}
	}

	embeds, err := d.buildEmbeds(shape, log)
	if err != nil {
		log.Error("failed to build embeds from event", "error", err)
		return Result{Status: http.StatusInternalServerError, Message: "Event parsing failed."}
	}

	if len(embeds) == 0 {
		log.Warn("no embeds were generated from the event")
		return Result{Status: http.StatusOK, Message: "No actionable content found in event."}
	}

	failures := 0
	for _, e := range embeds {
		if err := d.transport.Send(ctx, e); err != nil {
			log.Error("notification send failed",
				"transport", d.transport.Name(),
				"title", e.Title,
				"error", err,
			)
			failures++
			continue
		}
		log.Debug("notification sent", "transport", d.transport.Name(), "title", e.Title)
	}

	if failures > 0 {
		return Result{
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("Partial failure: %d notification(s) failed.", failures),
		}
	}

	return Result{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Successfully sent %d notification(s).", len(embeds)),
	}
}

// buildEmbeds routes the classified shape to the matching formatter.
func (d *Dispatcher) buildEmbeds(shape envelope.Shape, log *slog.Logger) ([]embed.Embed, error) {
	switch v := shape.(type) {
	case envelope.Relay:
		return relayEmbeds(v, log), nil
	case *envelope.BusEvent:
		return []embed.Embed{parse.Bus(v)}, nil
	case envelope.Unknown:
		log.Warn("unrecognised event structure")
		return []embed.Embed{parse.UnknownEnvelope(v.Raw)}, nil
	default:
		return nil, fmt.Errorf("unhandled envelope shape %T", shape)
	}
}

// relayEmbeds fans a relay envelope out into one embed per SNS record.
// Records are processed independently; a message that fails to parse as
// JSON is downgraded to a plain-text notification for that record only.
func relayEmbeds(relay envelope.Relay, log *slog.Logger) []embed.Embed {
	embeds := make([]embed.Embed, 0, len(relay.Records))
	for _, rec := range relay.Records {
		if !rec.FromSNS() {
			continue
		}

		raw := []byte(rec.SNS.Message)

		var parsed map[string]any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			log.Info("relay message is plain text, not JSON", "message_id", rec.SNS.MessageID)
			embeds = append(embeds, parse.PlainRelay(rec))
			continue
		}

		if msg, ok := parse.DecodeAlarm(raw); ok {
			embeds = append(embeds, parse.Alarm(msg))
			continue
		}

		embeds = append(embeds, parse.StructuredRelay(rec, parsed))
	}
	return embeds
}
