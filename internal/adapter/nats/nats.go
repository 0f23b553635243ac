// Package nats ingests inbound envelopes from a NATS JetStream subject.
package nats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const streamName = "NOTIFIER"

// Handler processes one raw envelope pulled from the stream.
type Handler func(ctx context.Context, data []byte)

// Ingest consumes envelopes published to a JetStream subject and feeds
// them into the dispatch pipeline.
type Ingest struct {
	nc *nats.Conn
	js jetstream.JetStream
}

// Connect establishes a connection to NATS and ensures the envelope
// stream exists for the given subject.
func Connect(ctx context.Context, url, subject string) (*Ingest, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream init: %w", err)
	}

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subject},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream stream create: %w", err)
	}

	slog.Info("nats connected", "url", url, "stream", streamName, "subject", subject)
	return &Ingest{nc: nc, js: js}, nil
}

// Subscribe registers a handler for envelopes on the given subject.
// Messages are always acked after one handler pass: delivery is single
// attempt end to end, so a failed dispatch is not redelivered.
func (i *Ingest) Subscribe(ctx context.Context, subject string, handler Handler) (func(), error) {
	consumer, err := i.js.CreateOrUpdateConsumer(ctx, streamName, jetstream.ConsumerConfig{
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("nats consumer create: %w", err)
	}

	cons, err := consumer.Consume(func(msg jetstream.Msg) {
		handler(ctx, msg.Data())
		if ackErr := msg.Ack(); ackErr != nil {
			slog.Error("nats ack failed", "error", ackErr)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("nats consume: %w", err)
	}

	return cons.Stop, nil
}

// Close shuts down the NATS connection.
func (i *Ingest) Close() error {
	i.nc.Close()
	return nil
}
