package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/la-rentals/fleet/internal/config"
	"github.com/la-rentals/fleet/internal/core"
	"github.com/la-rentals/fleet/internal/logging"
	"github.com/la-rentals/fleet/internal/notify"
	"github.com/la-rentals/fleet/internal/store"
	"github.com/la-rentals/fleet/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"notify_enabled", cfg.Notify.Enabled,
	)

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		slog.Error("failed to run schema migration", "error", err)
		os.Exit(1)
	}

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	var queue *notify.Queue
	if cfg.Notify.Enabled {
		client := notify.NewClient(notify.ClientConfig{
			APIKey:       cfg.Notify.APIKey,
			ChannelID:    cfg.Notify.ChannelID,
			Namespace:    cfg.Notify.Namespace,
			TemplateName: cfg.Notify.TemplateName,
		}, nil)
		queue = notify.NewQueue(client, notify.QueueConfig{
			PrimaryTo:  cfg.Notify.PrimaryNumber,
			BoltTo:     cfg.Notify.BoltNumber,
			DrainDelay: cfg.Notify.DrainDelay,
		})
		go queue.Run(jobCtx)
		slog.Info("notification queue started", "drain_delay", cfg.Notify.DrainDelay)
	}

	service := core.New(st, queue)
	server := web.NewServer(service, cfg)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if pending := pendingNotifications(queue); pending > 0 {
			slog.Warn("shutting down with queued notifications", "pending", pending)
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(cfg.Server.Addr()); err != nil && err != http.ErrServerClosed {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func pendingNotifications(q *notify.Queue) int {
	if q == nil {
		return 0
	}
	return q.Len()
}
