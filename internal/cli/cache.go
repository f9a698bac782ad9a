package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/pathplay/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered frame cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("redis") {
				redisAddr = c.Config.RedisAddr
			}
			return c.runCacheClear(cmd.Context(), cmd.OutOrStdout(), redisAddr)
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", "", "also clear this Redis frame cache")
	return cmd
}

func (c *CLI) runCacheClear(ctx context.Context, w io.Writer, redisAddr string) error {
	dir, err := c.cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear(ctx)
	if err != nil {
		return err
	}
	printSuccess(w, "Cleared %d cached frames", n)
	printDetail(w, "Directory: %s", dir)

	if redisAddr == "" {
		return nil
	}
	rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: redisAddr})
	if err != nil {
		return err
	}
	defer rc.Close()
	n, err = rc.Clear(ctx)
	if err != nil {
		return err
	}
	printSuccess(w, "Cleared %d frames from Redis", n)
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
