package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/diffsense/internal/datastore"
	"github.com/aleister1102/diffsense/internal/differ"
	"github.com/aleister1102/diffsense/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP comparison API",
		Long: `Start the HTTP API exposing the comparison engine.

The server memoizes results, throttles callers with a fixed request
window, and optionally records every run in the history database.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", "", "Listen address (overrides the configuration file)")

	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.ServerConfig.ListenAddr = listen
	}

	var historyStore *datastore.HistoryStore
	if cfg.StorageConfig.Enabled {
		historyStore, err = datastore.NewHistoryStore(cfg.StorageConfig, log)
		if err != nil {
			return err
		}
		defer historyStore.Close()
	}

	srv, err := server.NewBuilder(log).
		WithGlobalConfig(cfg).
		WithEngine(differ.NewEngine()).
		WithHistoryStore(historyStore).
		Build()
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
