package commands

import (
	"fmt"
	"yatube/config"

	"github.com/spf13/cobra"
)

// cacheCmd manages the rendered page cache
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the rendered page cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every cached page",
	Long: `Drop every cached page from the shared Redis page cache.

Only the redis cache backend can be cleared from here. The memory backend
keeps pages inside the running server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.Cache.Backend != config.BackendRedis {
			return errMemoryCache
		}

		ctx := cmd.Context()
		pageCache, release, err := openPageCache(ctx, settings)
		if err != nil {
			return err
		}
		defer release()

		if err := pageCache.Clear(ctx); err != nil {
			return fmt.Errorf("failed to clear page cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Page cache cleared")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
