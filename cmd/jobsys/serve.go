package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/tupyy/jobsystem/api/v1"
	"github.com/tupyy/jobsystem/internal/handlers"
	"github.com/tupyy/jobsystem/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the job system behind the HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode (dev, prod)")
	cmd.Flags().IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP port")
	cmd.Flags().DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "Time allowed for in-flight requests on shutdown")
	registerSchedulerFlags(cmd)

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.S().Named("serve")

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			log.Errorw("failed to close", "error", err)
		}
	}()

	h := handlers.New(a.workloads, a.scheduler)
	srv, err := server.NewServer(cfg, a.registry, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Warnw("http server did not stop cleanly", "error", err)
	}
	return <-errCh
}
