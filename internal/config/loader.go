package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "notifier.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
// DISCORD_WEBHOOK_URL and LOG_LEVEL keep the names of the original
// deployment contract.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "NOTIFIER_PORT")
	setString(&cfg.Discord.WebhookURL, "DISCORD_WEBHOOK_URL")
	setString(&cfg.Discord.Username, "DISCORD_USERNAME")
	setString(&cfg.Discord.AvatarURL, "DISCORD_AVATAR_URL")
	setDuration(&cfg.Discord.Timeout, "DISCORD_TIMEOUT")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.NATS.Subject, "NOTIFIER_NATS_SUBJECT")
	setBool(&cfg.Dedup.Enabled, "NOTIFIER_DEDUP_ENABLED")
	setDuration(&cfg.Dedup.TTL, "NOTIFIER_DEDUP_TTL")
	setInt64(&cfg.Dedup.MaxEntries, "NOTIFIER_DEDUP_MAX_ENTRIES")
	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Service, "NOTIFIER_LOG_SERVICE")
}

// validate checks that required fields are set. The webhook URL is not
// required here: its absence is reported per invocation, matching the
// original handler.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Discord.Timeout <= 0 {
		return errors.New("discord.timeout must be positive")
	}
	if cfg.Dedup.Enabled && cfg.Dedup.MaxEntries < 1 {
		return errors.New("dedup.max_entries must be >= 1")
	}
	if cfg.NATS.URL != "" && cfg.NATS.Subject == "" {
		return errors.New("nats.subject is required when nats.url is set")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
