// Package discord implements a transport.Transport for Discord webhooks.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/initrd/lambda-discord-notifier/internal/domain/embed"
	"github.com/initrd/lambda-discord-notifier/internal/port/transport"
)

const (
	providerName     = "discord"
	defaultUsername  = "AWS Notifier"
	userAgent        = "aws-discord-notifier/1.0"
	defaultTimeout   = 10 * time.Second
	maxErrorBodyRead = 4 << 10
)

// Webhook posts embeds to a Discord incoming webhook.
type Webhook struct {
	webhookURL string
	username   string
	avatarURL  string
	httpClient *http.Client
}

// Option customizes a Webhook.
type Option func(*Webhook)

// WithUsername overrides the webhook bot username.
func WithUsername(name string) Option {
	return func(w *Webhook) { w.username = name }
}

// WithAvatarURL overrides the webhook bot avatar.
func WithAvatarURL(url string) Option {
	return func(w *Webhook) { w.avatarURL = url }
}

// WithTimeout bounds the outbound request.
func WithTimeout(d time.Duration) Option {
	return func(w *Webhook) { w.httpClient.Timeout = d }
}

// NewWebhook creates a Discord transport for the given webhook URL.
func NewWebhook(webhookURL string, opts ...Option) *Webhook {
	w := &Webhook{
		webhookURL: webhookURL,
		username:   defaultUsername,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Webhook) Name() string { return providerName }

// webhookPayload is the Discord webhook request body.
type webhookPayload struct {
	Username  string       `json:"username"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Embeds    []embed.Wire `json:"embeds"`
}

// Send posts a single embed to the webhook. Exactly one attempt is made;
// HTTP rejections come back as *transport.StatusError, network failures
// as wrapped errors.
func (w *Webhook) Send(ctx context.Context, e embed.Embed) error {
	if w.webhookURL == "" {
		return transport.ErrNotConfigured
	}

	payload := webhookPayload{
		Username:  w.username,
		AvatarURL: w.avatarURL,
		Embeds:    []embed.Wire{e.ToWire()},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.httpClient.Do(req) //nolint:gosec // webhook URL from trusted config
	if err != nil {
		return fmt.Errorf("discord send: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Discord returns 204 on success
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyRead))
		return &transport.StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	return nil
}
