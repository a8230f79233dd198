package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/adapters/httpapi"
	"github.com/example/fleetdesk/internal/wire"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the JSON API under /api, liveness on /healthz and Prometheus
metrics on /metrics until interrupted.`,
		Args: exactArgs(0),
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default from config http.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := wire.Init(); err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = wire.Config().HTTP.Addr
	}

	logger := log.StandardLogger()
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.NewRouter(wire.HTTPServices(), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("addr", addr).Info("fleetdesk API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
