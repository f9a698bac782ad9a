package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/buildinfo"
	"github.com/matzehuels/pathplay/pkg/cache"
	"github.com/matzehuels/pathplay/pkg/pipeline"
	"github.com/matzehuels/pathplay/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen    string
		redisAddr string
		ttl       time.Duration
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the playback API over HTTP",
		Long: `Serve the playback API over HTTP.

Each client creates a workspace, edits its graph and drives the player with
small requests; rendered frames are cached. With --redis (or redis_addr in
the config file) the frame cache lives in Redis and is shared between
instances, otherwise it lives in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") && c.Config.Listen != "" {
				listen = c.Config.Listen
			}
			if !cmd.Flags().Changed("redis") {
				redisAddr = c.Config.RedisAddr
			}
			return c.runServe(cmd.Context(), listen, redisAddr, ttl, noCache)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to listen on")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address or redis:// URL for the frame cache")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTTL, "idle lifetime of a workspace")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen, redisAddr string, ttl time.Duration, noCache bool) error {
	runner, err := c.newServeRunner(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := server.New(server.Options{
		Runner:   runner,
		Logger:   c.Logger,
		TTL:      ttl,
		Interval: c.Config.Interval(),
		Nodes:    c.Config.Nodes,
		Random:   c.Config.RandomOptions(),
	})
	return srv.ListenAndServe(ctx, listen)
}

// newServeRunner builds the server's runner. Redis keys are scoped by
// build version so instances running different renderers never share
// frames.
func (c *CLI) newServeRunner(ctx context.Context, redisAddr string, noCache bool) (*pipeline.Runner, error) {
	if noCache || redisAddr == "" {
		return c.newRunner(noCache)
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr})
	if err != nil {
		return nil, fmt.Errorf("initialize cache: %w", err)
	}
	c.Logger.Info("using redis frame cache", "addr", redisAddr)
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	return pipeline.NewRunner(cache.Instrument(rc), keyer, c.Logger), nil
}
