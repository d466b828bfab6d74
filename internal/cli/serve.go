package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"goterm/internal/config"
	"goterm/internal/gateway"
	"goterm/pkg/logger"
)

// NewServeCmd creates the serve command, which exposes the sandboxed
// terminal over HTTP and websocket.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if host != "" {
				cfg.Gateway.Host = host
			}
			if port != 0 {
				cfg.Gateway.Port = port
			}

			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			srv, err := gateway.NewServer(cfg.Gateway, app.NewSession, app.History())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down gateway")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Stop(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}
