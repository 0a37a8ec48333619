package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/maestro/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP front door",
	Long: `Starts the HTTP server exposing the supervisor:

  POST /api/query   Run a query through the pipeline
  GET  /api/agents  List registered agents
  GET  /api/health  Health probe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp()
		if err != nil {
			return err
		}
		defer app.close()

		addr := app.cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		srv := server.New(app.supervisor, app.registry, app.log, server.Options{
			Addr:       addr,
			EnableCORS: app.cfg.Server.EnableCORS,
			Debug:      app.cfg.Server.Debug,
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Run()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		fmt.Printf("maestro listening on %s (%d agents)\n", addr, app.registry.Len())

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
			fmt.Println("\nshutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
}
