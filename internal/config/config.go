// Package config provides hierarchical configuration loading for the notifier.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the notifier service.
type Config struct {
	Server  Server  `yaml:"server"`
	Discord Discord `yaml:"discord"`
	NATS    NATS    `yaml:"nats"`
	Dedup   Dedup   `yaml:"dedup"`
	Logging Logging `yaml:"logging"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port string `yaml:"port"`
}

// Discord holds webhook delivery configuration. WebhookURL may be empty
// at startup; invocations then fail with a configuration error until it
// is set.
type Discord struct {
	WebhookURL string        `yaml:"webhook_url"`
	Username   string        `yaml:"username"`
	AvatarURL  string        `yaml:"avatar_url"`
	Timeout    time.Duration `yaml:"timeout"`
}

// NATS holds the optional JetStream ingest configuration. An empty URL
// disables the consumer.
type NATS struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Dedup holds the event-ID dedup cache configuration.
type Dedup struct {
	Enabled    bool          `yaml:"enabled"`
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int64         `yaml:"max_entries"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: Server{
			Port: "8080",
		},
		Discord: Discord{
			Username: "AWS Notifier",
			Timeout:  10 * time.Second,
		},
		NATS: NATS{
			Subject: "events.inbound",
		},
		Dedup: Dedup{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 4096,
		},
		Logging: Logging{
			Level:   "info",
			Service: "discord-notifier",
		},
	}
}
