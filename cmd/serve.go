package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/kensa/internal/app"
	"github.com/raysh454/kensa/internal/interfaces"
	"github.com/raysh454/kensa/internal/logging"
	"github.com/raysh454/kensa/internal/server"
	"github.com/raysh454/kensa/internal/webclient"
)

func newServeCmd() *cobra.Command {
	var listen string
	var userAgent string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the suppression screen HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.DefaultConfig()
			if listen != "" {
				cfg.ListenAddr = listen
			}
			if userAgent != "" {
				cfg.FetcherCfg.UserAgent = userAgent
			}

			logger := logging.NewStdoutLogger("kensa")
			webclient.RegisterDefaultBackends()

			s, err := server.NewServer(server.Config{
				ListenAddr: cfg.ListenAddr,
				AppConfig:  cfg,
				Logger:     logger,
			})
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}

			logger.Info("listening", interfaces.Field{Key: "addr", Value: cfg.ListenAddr})
			return s.HTTPServer().ListenAndServe()
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "override the outbound user agent")
	return cmd
}
