package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfredjeanlab/threads/internal/config"
	"github.com/alfredjeanlab/threads/internal/events"
	"github.com/alfredjeanlab/threads/internal/notify"
	"github.com/alfredjeanlab/threads/internal/presence"
	"github.com/alfredjeanlab/threads/internal/server"
	"github.com/alfredjeanlab/threads/internal/store/postgres"
	threadsync "github.com/alfredjeanlab/threads/internal/sync"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Start the threads server",
	GroupID: "system",
	// Override PersistentPreRunE so we don't construct a client.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (THREADS_NATS_URL not set)")
		}

		// Create the server and its presence reaper.
		threadsServer := server.NewThreadsServer(store, publisher)
		threadsServer.PresenceTTL = cfg.PresenceTTL
		threadsServer.Presence.StartReaper(&presence.ReaperConfig{
			GoneThreshold: cfg.PresenceTTL,
		})

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: threadsServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start archive scheduler if any destinations are configured.
		var scheduler *threadsync.Scheduler
		if cfg.ArchiveInterval > 0 {
			var dests []threadsync.Destination

			if cfg.ArchiveS3Bucket != "" {
				s3Dest, err := threadsync.NewS3Destination(
					context.Background(),
					cfg.ArchiveS3Bucket,
					cfg.ArchiveS3Key,
					cfg.ArchiveS3Region,
					cfg.ArchiveS3Endpoint,
				)
				if err != nil {
					logger.Error("failed to create S3 archive destination", "err", err)
				} else {
					dests = append(dests, s3Dest)
					logger.Info("archive S3 destination enabled", "bucket", cfg.ArchiveS3Bucket, "key", cfg.ArchiveS3Key)
				}
			}

			if cfg.ArchiveGitRepo != "" {
				gitDest := threadsync.NewGitDestination(cfg.ArchiveGitRepo, cfg.ArchiveGitFile, cfg.ArchiveGitBranch)
				dests = append(dests, gitDest)
				logger.Info("archive git destination enabled", "repo", cfg.ArchiveGitRepo, "file", cfg.ArchiveGitFile)
			}

			if len(dests) > 0 {
				scheduler = threadsync.NewScheduler(store, dests, cfg.ArchiveInterval, logger)
				scheduler.Start()
				logger.Info("archive scheduler started", "interval", cfg.ArchiveInterval)
			}
		}

		// Start the notification delivery subscriber when both NATS and a
		// delivery command are configured.
		var notifyCancel context.CancelFunc
		if cfg.NATSURL != "" && cfg.NotifyCommand != "" {
			notifySub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				logger.Error("failed to create notify subscriber", "err", err)
			} else {
				dispatcher := notify.NewDispatcher(cfg.NotifyCommand, cfg.NotifyTimeout, logger)
				var notifyCtx context.Context
				notifyCtx, notifyCancel = context.WithCancel(context.Background())
				go func() {
					if err := dispatcher.StartSubscriber(notifyCtx, notifySub); err != nil {
						logger.Error("notify subscriber error", "err", err)
					}
					notifySub.Close()
				}()
			}
		}

		logger.Info("threads server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if notifyCancel != nil {
			notifyCancel()
			logger.Info("notify subscriber stopped")
		}

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("archive scheduler stopped")
		}

		threadsServer.Presence.Stop()
		logger.Info("presence reaper stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
