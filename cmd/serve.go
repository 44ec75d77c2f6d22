package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"threadjuice/internal/ingest"
	"threadjuice/internal/redisclient"
	"threadjuice/internal/server"
	"threadjuice/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion API and scheduled workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		rdb := redisclient.New(cfg.Redis)
		defer rdb.Close()

		app, err := buildApp(cfg, rdb, true)
		if err != nil {
			return err
		}

		srv := &server.Server{
			Ingest:       app.service,
			Orchestrator: app.orchestrator,
			Stories:      app.store,
		}
		httpSrv := &http.Server{Addr: cfg.Server.Addr, Handler: srv.Router()}

		// Scheduled trigger reuses the start-job contract with the preset
		// config from config.yaml.
		var ws []worker.Worker
		if cfg.Ingest.Schedule != "" {
			interval, err := time.ParseDuration(cfg.Ingest.Schedule)
			if err != nil {
				return fmt.Errorf("invalid ingest.schedule: %w", err)
			}
			ws = append(ws, &worker.ScheduledIngest{
				Service:  app.service,
				Interval: interval,
				Config: ingest.JobConfig{
					Subreddits:        cfg.Ingest.Subreddits,
					LimitPerSubreddit: cfg.Ingest.LimitPerSubreddit,
					MinViralScore:     cfg.Ingest.MinViralScore,
					MaxAgeHours:       cfg.Ingest.MaxAgeHours,
					AutoPublish:       cfg.Ingest.AutoPublish,
				},
			})
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Signal handling for systemd
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			log.Printf("received signal: %s, shutting down", s)
			cancel()
		}()

		go func() {
			slog.Info("serve: http api listening", "addr", cfg.Server.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("serve: http server error", "error", err)
				cancel()
			}
		}()

		mgrErr := make(chan error, 1)
		if len(ws) > 0 {
			mgr := worker.NewManager(ws...)
			go func() { mgrErr <- mgr.Start(ctx) }()
		} else {
			go func() { <-ctx.Done(); mgrErr <- nil }()
		}

		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			slog.Error("serve: http shutdown error", "error", err)
		}
		return <-mgrErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
