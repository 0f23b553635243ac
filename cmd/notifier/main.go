package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/initrd/lambda-discord-notifier/internal/adapter/discord"
	nhttp "github.com/initrd/lambda-discord-notifier/internal/adapter/http"
	nnats "github.com/initrd/lambda-discord-notifier/internal/adapter/nats"
	"github.com/initrd/lambda-discord-notifier/internal/adapter/ristretto"
	"github.com/initrd/lambda-discord-notifier/internal/config"
	"github.com/initrd/lambda-discord-notifier/internal/logger"
	"github.com/initrd/lambda-discord-notifier/internal/parse"
	"github.com/initrd/lambda-discord-notifier/internal/port/transport"
	"github.com/initrd/lambda-discord-notifier/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	slog.SetDefault(logger.New(cfg.Logging))
	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Logging.Level,
		"webhook_configured", cfg.Discord.WebhookURL != "",
		"nats_enabled", cfg.NATS.URL != "",
	)

	parse.RegisterBuiltins()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Delivery ---

	var webhook transport.Transport
	if cfg.Discord.WebhookURL != "" {
		webhook = discord.NewWebhook(cfg.Discord.WebhookURL,
			discord.WithUsername(cfg.Discord.Username),
			discord.WithAvatarURL(cfg.Discord.AvatarURL),
			discord.WithTimeout(cfg.Discord.Timeout),
		)
	} else {
		slog.Warn("DISCORD_WEBHOOK_URL is not set, every invocation will fail")
	}

	var dedup service.Deduper
	if cfg.Dedup.Enabled {
		cache, err := ristretto.NewDedup(cfg.Dedup.MaxEntries, cfg.Dedup.TTL)
		if err != nil {
			return fmt.Errorf("dedup cache: %w", err)
		}
		defer cache.Close()
		dedup = cache
	}

	dispatcher := service.NewDispatcher(webhook, dedup)

	// --- Ingest: NATS (optional) ---

	if cfg.NATS.URL != "" {
		ingest, err := nnats.Connect(ctx, cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer func() { _ = ingest.Close() }()

		unsubscribe, err := ingest.Subscribe(ctx, cfg.NATS.Subject, func(ctx context.Context, data []byte) {
			res := dispatcher.Handle(ctx, data)
			slog.Info("nats envelope dispatched", "status", res.Status, "message", res.Message)
		})
		if err != nil {
			return fmt.Errorf("nats subscribe: %w", err)
		}
		defer unsubscribe()
	}

	// --- Ingest: HTTP ---

	handlers := &nhttp.Handlers{Dispatcher: dispatcher}

	r := chi.NewRouter()
	r.Use(nhttp.RequestID)
	r.Use(nhttp.Logger)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	nhttp.MountRoutes(r, handlers)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
