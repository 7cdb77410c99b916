package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"RieperLogistics_ScanLedger/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

type ServeOptions struct {
	*RootOptions
	Addr     string
	AutoSync time.Duration
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the device API (entry form backend and live table feed)",
		Long: `Run the local device API used by the entry form.

With --auto-sync the current batch is sent on every interval. A failed
send keeps the batch and is not retried until the next interval.`,
		Example: `  ledger serve --addr :8090
  ledger serve --auto-sync 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides DEVICE_ADDR)")
	cmd.Flags().DurationVar(&opts.AutoSync, "auto-sync", 0, "send interval, 0 disables (overrides AUTO_SYNC_INTERVAL)")
	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svc, closeFn, err := opts.openService(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	addr := opts.device.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}
	interval := opts.device.AutoSyncInterval
	if cmd.Flags().Changed("auto-sync") {
		interval = opts.AutoSync
	}

	if opts.device.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler.NewDeviceRouter(svc, opts.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go svc.AutoSync(ctx, interval)

	errc := make(chan error, 1)
	go func() {
		opts.logger.WithField("addr", addr).Info("runServe(): device API listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	opts.logger.Info("runServe(): shutting down")
	return srv.Shutdown(shutdownCtx)
}
