package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dashsite/internal/assemble"
	"dashsite/internal/db"
	"dashsite/internal/progress"
	"dashsite/internal/server"
	"dashsite/internal/status"
	"dashsite/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and preview it with live reload",
	Long: `Builds the site, serves it under the configured root marker, and keeps it
fresh: source changes trigger a rebuild and a reload push to connected
browsers. The gateway status API and its history recorder run alongside.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override listen port")
	serveCmd.Flags().Bool("watch", true, "rebuild when source files change")
	serveCmd.Flags().Bool("no-history", false, "do not record gateway status samples")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Serve.Port = port
	}
	watching, _ := cmd.Flags().GetBool("watch")
	if watching {
		cfg.Serve.LiveReload = true
	}

	log := newLogger()
	defer log.Sync()

	asm, err := assemble.New(cfg, log)
	if err != nil {
		return err
	}
	asm.LiveReload = cfg.Serve.LiveReload
	if _, err := asm.Build(progress.NewReporter(false)); err != nil {
		return fmt.Errorf("building site: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	monitor := status.NewMonitor(cfg.Status, log)

	var store *status.Store
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory && cfg.Status.HistoryDB != "" {
		database, err := db.Open(cfg.Status.HistoryDB)
		if err != nil {
			return fmt.Errorf("opening status history db: %w", err)
		}
		defer database.Close()
		store = status.NewStore(database)
		log.Info("recording gateway status", zap.String("db", database.Path()))
	}

	srv := server.New(cfg, log, monitor, store)

	poller := status.NewPoller(monitor, store, log, cfg.Status.PollInterval())
	go poller.Run(ctx)

	if watching {
		rebuild := func(_ []string) {
			if _, err := asm.Build(progress.NullReporter{}); err != nil {
				log.Error("rebuild failed", zap.Error(err))
				return
			}
			srv.Hub().Broadcast("reload")
		}
		w, err := watch.New(cfg.SourceDir, cfg.OutputDir, rebuild, log)
		if err != nil {
			return fmt.Errorf("watching source: %w", err)
		}
		if err := w.Start(ctx); err != nil {
			return fmt.Errorf("watching source: %w", err)
		}
		defer w.Stop()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
