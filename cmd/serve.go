package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizsmith/quizsmith/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the quiz generation HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if cmd.Flags().Changed("port") {
			rt.cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		srv := server.New(rt.generator(), rt.cfg.Server, rt.logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Listen(rt.cfg.Server.Port)
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			return err
		case sig := <-quit:
			rt.logger.Info("shutting down server", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		rt.logger.Info("server exited gracefully")
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 5000, "Port to listen on (overrides PORT)")
}
