package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/boogie/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the augmentation API over HTTP",
		Long: `Serve the augmentation API over HTTP.

Settings are read from the environment:
  BOOGIE_ADDR              listen address (default ":8080")
  BOOGIE_REDIS_URL         cache results in Redis (disabled if empty)
  BOOGIE_CACHE_TTL         lifetime of cached results (default 168h)
  BOOGIE_CACHE_PREFIX      key prefix in the shared cache
  BOOGIE_MAX_BODY_BYTES    request size limit
  BOOGIE_SHUTDOWN_TIMEOUT  graceful shutdown window`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := server.LoadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx := cmd.Context()
			runner, err := server.NewRunner(ctx, cfg, c.Logger)
			if err != nil {
				return err
			}
			defer runner.Close()

			printKeyValue("listen", cfg.Addr)
			if cfg.RedisURL != "" {
				printKeyValue("cache", "redis")
			} else {
				printKeyValue("cache", "disabled")
			}
			return server.New(cfg, runner, c.Logger).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides BOOGIE_ADDR)")

	return cmd
}
