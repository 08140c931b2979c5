package cli

import (
	"github.com/spf13/cobra"

	"github.com/HamletDuFromage/x-stitch/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the xstitch HTTP API. Without a config file the server listens on
:8080 with an in-memory cache and pattern store; a TOML config selects
redis or file caching and a MongoDB-backed pattern library.

Example config:

  addr = ":8080"

  [cache]
  backend = "redis"
  ttl = "720h"

  [cache.redis]
  addr = "localhost:6379"

  [store]
  backend = "mongo"

  [store.mongo]
  uri = "mongodb://localhost:27017"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := server.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			srv, err := server.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = srv.Close(ctx) }()

			logger.Info("starting server",
				"addr", cfg.Addr,
				"cache", cfg.Cache.Backend,
				"store", cfg.Store.Backend,
			)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config file)")

	return cmd
}
