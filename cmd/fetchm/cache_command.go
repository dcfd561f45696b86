package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fetchm/internal/samplecache"
	"fetchm/internal/textutil"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the sample lookup cache",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheCountCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))

	return cacheCmd
}

// openCache loads the persistent cache. Without a configured cache path
// there is nothing on disk to inspect, so these commands require one.
func openCache(ctx *commandContext) (*samplecache.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Paths.CachePath == "" {
		return nil, fmt.Errorf("cache persistence is disabled; set paths.cache_path in the configuration")
	}
	return samplecache.New(cfg.Paths.CachePath, ctx.ensureLogger()), nil
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached sample lookups, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(ctx)
			if err != nil {
				return err
			}

			entries := cache.List()
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.SampleID,
					textutil.Ternary(entry.Failed, "failed", "ok"),
					entry.Enrichment.CollectionDate,
					entry.Enrichment.GeoLocation,
					entry.CachedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Sample", "Status", "Collection Date", "Location", "Cached At"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}

func newCacheCountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of cached lookups",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", cache.Count())
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached lookup",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			removed := cache.Count()
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached lookups\n", removed)
			return nil
		},
	}
}
