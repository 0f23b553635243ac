// Package transport defines the outbound delivery port for rendered embeds.
package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
)

// ErrNotConfigured is returned when a transport has no destination endpoint.
var ErrNotConfigured = errors.New("transport: not configured")

// StatusError reports a remote endpoint rejecting a delivery.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote rejected delivery: status %d: %s", e.Code, e.Body)
}

// Transport is the port interface for delivering one embed. Both remote
// rejections and network failures are plain errors; callers treat the two
// kinds identically and record them as per-notification failures.
type Transport interface {
	// Name returns the unique identifier for this transport (e.g. "discord").
	Name() string

	// Send delivers a single embed. Exactly one attempt is made.
	Send(ctx context.Context, e embed.Embed) error
}
